package hashid_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidetutor/internal/hashid"
)

func TestCompute_Deterministic(t *testing.T) {
	data := []byte("slide deck content")

	id1, err := hashid.Compute(bytes.NewReader(data))
	require.NoError(t, err)
	id2, err := hashid.Compute(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Len(t, id1, hashid.IDLength)
	assert.Regexp(t, "^[0-9a-f]+$", id1)
}

func TestCompute_SingleByteChange(t *testing.T) {
	id1, err := hashid.Compute(strings.NewReader("content-a"))
	require.NoError(t, err)
	id2, err := hashid.Compute(strings.NewReader("content-b"))
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
}

func TestCompute_LargeInputStreams(t *testing.T) {
	// Larger than one internal chunk, exercising multi-read hashing.
	data := bytes.Repeat([]byte("x"), 100_000)

	id, err := hashid.Compute(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, id, hashid.IDLength)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk error")
}

func TestCompute_ReaderError(t *testing.T) {
	_, err := hashid.Compute(failingReader{})
	assert.Error(t, err)
}
