package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"slidetutor/internal/domain"
	"slidetutor/internal/handler"
	"slidetutor/internal/service"
	"slidetutor/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newDeckHandler() (*handler.DeckHandler, *mocks.MockDeckService, *mocks.MockExplainService, *mocks.MockExportService) {
	deckSvc := new(mocks.MockDeckService)
	explainSvc := new(mocks.MockExplainService)
	exportSvc := new(mocks.MockExportService)
	return handler.NewDeckHandler(deckSvc, explainSvc, exportSvc), deckSvc, explainSvc, exportSvc
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestDeckHandler_Upload_New(t *testing.T) {
	h, deckSvc, _, _ := newDeckHandler()

	doc := &domain.Document{ID: "abc123def456abcd", Filename: "lecture.pdf", TotalPages: 10}
	deckSvc.On("Upload", mock.Anything, mock.Anything).
		Return(&service.DeckUploadResult{Document: doc, AlreadyCached: false}, nil)

	body, contentType := multipartBody(t, "file", "lecture.pdf", []byte("%PDF-1.4"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/decks", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestDeckHandler_Upload_AlreadyCached(t *testing.T) {
	h, deckSvc, _, _ := newDeckHandler()

	doc := &domain.Document{ID: "abc123def456abcd", Filename: "lecture.pdf", TotalPages: 10}
	deckSvc.On("Upload", mock.Anything, mock.Anything).
		Return(&service.DeckUploadResult{Document: doc, AlreadyCached: true}, nil)

	body, contentType := multipartBody(t, "file", "lecture.pdf", []byte("%PDF-1.4"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/decks", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Upload(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeckHandler_Upload_MissingFile(t *testing.T) {
	h, _, _, _ := newDeckHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/decks", bytes.NewReader(nil))
	c.Request.Header.Set("Content-Type", "multipart/form-data; boundary=x")

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "MISSING_FILE", resp.Error.Code)
}

func TestDeckHandler_Upload_UnsupportedType(t *testing.T) {
	h, deckSvc, _, _ := newDeckHandler()
	deckSvc.On("Upload", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedFileType)

	body, contentType := multipartBody(t, "file", "notes.docx", []byte("PK"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/decks", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeckHandler_GetInfo_NotFound(t *testing.T) {
	h, deckSvc, _, _ := newDeckHandler()
	deckSvc.On("GetInfo", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/decks/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.GetInfo(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeckHandler_GetExplanation(t *testing.T) {
	h, _, explainSvc, _ := newDeckHandler()

	exp := &domain.Explanation{DocumentID: "abc", PageNumber: 3, Summary: "heap basics"}
	explainSvc.On("Explain", mock.Anything, "abc", 3).Return(exp, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/decks/abc/pages/3", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}, {Key: "page", Value: "3"}}

	h.GetExplanation(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestDeckHandler_GetExplanation_NonIntegerPage(t *testing.T) {
	h, _, explainSvc, _ := newDeckHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/decks/abc/pages/three", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}, {Key: "page", Value: "three"}}

	h.GetExplanation(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	explainSvc.AssertNotCalled(t, "Explain", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeckHandler_GetExplanation_PageOutOfRange(t *testing.T) {
	h, _, explainSvc, _ := newDeckHandler()

	explainSvc.On("Explain", mock.Anything, "abc", 99).
		Return(nil, &domain.PageOutOfRangeError{Page: 99, TotalPages: 10})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/decks/abc/pages/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}, {Key: "page", Value: "99"}}

	h.GetExplanation(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PAGE_OUT_OF_RANGE", resp.Error.Code)
	// The message carries the valid range.
	assert.Contains(t, resp.Error.Message, "1-10")
}

func TestDeckHandler_Export_CSV(t *testing.T) {
	h, _, _, exportSvc := newDeckHandler()

	exportSvc.On("ExportCSV", mock.Anything, "abc", mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = args.Get(2).(io.Writer).Write([]byte("Page,Summary\n"))
		}).
		Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/decks/abc/export", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "deck-abc.csv")
	assert.Contains(t, w.Body.String(), "Page,Summary")
}

func TestDeckHandler_Export_XLSX(t *testing.T) {
	h, _, _, exportSvc := newDeckHandler()

	exportSvc.On("ExportXLSX", mock.Anything, "abc").Return([]byte("PK workbook"), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/decks/abc/export?format=xlsx", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "deck-abc.xlsx")
	assert.Equal(t, "PK workbook", w.Body.String())
}

func TestDeckHandler_Export_InvalidFormat(t *testing.T) {
	h, _, _, exportSvc := newDeckHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/decks/abc/export?format=pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	exportSvc.AssertNotCalled(t, "ExportCSV", mock.Anything, mock.Anything, mock.Anything)
	exportSvc.AssertNotCalled(t, "ExportXLSX", mock.Anything, mock.Anything)
}
