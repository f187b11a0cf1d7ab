package render_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidetutor/internal/domain"
	"slidetutor/internal/render"
)

// minimalPDF assembles a valid single-page PDF with a correct xref table.
func minimalPDF() []byte {
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 100] >>\nendobj\n",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		buf.WriteString(obj)
	}

	xrefOffset := buf.Len()
	buf.WriteString("xref\n")
	fmt.Fprintf(&buf, "0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefOffset)

	return buf.Bytes()
}

func TestFitzRenderer_PageCount(t *testing.T) {
	r := render.NewFitzRenderer(0)

	count, err := r.PageCount(minimalPDF())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFitzRenderer_PageCount_Corrupt(t *testing.T) {
	r := render.NewFitzRenderer(0)

	_, err := r.PageCount([]byte("this is not a pdf"))
	assert.ErrorIs(t, err, domain.ErrCorruptDocument)
}

func TestFitzRenderer_RenderPage(t *testing.T) {
	r := render.NewFitzRenderer(72)

	img, err := r.RenderPage(minimalPDF(), 1)
	require.NoError(t, err)

	// PNG signature
	require.True(t, len(img) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img[:4])
}

func TestFitzRenderer_RenderPage_OutOfRange(t *testing.T) {
	r := render.NewFitzRenderer(72)

	for _, page := range []int{0, 2} {
		_, err := r.RenderPage(minimalPDF(), page)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrPageOutOfRange)

		var rangeErr *domain.PageOutOfRangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, 1, rangeErr.TotalPages)
	}
}
