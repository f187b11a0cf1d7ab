package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"slidetutor/internal/service"
)

// DeckHandler handles deck upload, metadata, and explanation endpoints.
type DeckHandler struct {
	deckService    service.DeckService
	explainService service.ExplainService
	exportService  service.ExportService
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(
	deckService service.DeckService,
	explainService service.ExplainService,
	exportService service.ExportService,
) *DeckHandler {
	return &DeckHandler{
		deckService:    deckService,
		explainService: explainService,
		exportService:  exportService,
	}
}

// Upload handles POST /api/v1/decks
// @Summary Upload a slide deck
// @Description Upload a PDF slide deck. Re-uploading identical bytes returns the existing document.
// @Tags decks
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF file to upload"
// @Success 201 {object} APIResponse "Deck stored"
// @Success 200 {object} APIResponse "Deck already cached"
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 413 {object} APIResponse "File too large"
// @Router /decks [post]
func (h *DeckHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.deckService.Upload(c.Request.Context(), service.DeckUploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if result.AlreadyCached {
		RespondOK(c, result)
		return
	}
	RespondCreated(c, result)
}

// GetInfo handles GET /api/v1/decks/:id
// @Summary Get deck metadata
// @Tags decks
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse "Deck not found"
// @Router /decks/{id} [get]
func (h *DeckHandler) GetInfo(c *gin.Context) {
	doc, err := h.deckService.GetInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// GetExplanation handles GET /api/v1/decks/:id/pages/:page
// @Summary Get the explanation for one page
// @Description Returns the cached explanation or generates one on a cache miss.
// @Tags decks
// @Produce json
// @Param id path string true "Document ID"
// @Param page path int true "1-based page number"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse "Page out of range"
// @Failure 404 {object} APIResponse "Deck not found"
// @Router /decks/{id}/pages/{page} [get]
func (h *DeckHandler) GetExplanation(c *gin.Context) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_PAGE", "page must be an integer")
		return
	}

	exp, err := h.explainService.Explain(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, exp)
}

// Export handles GET /api/v1/decks/:id/export
// @Summary Export cached explanations as a study sheet
// @Tags decks
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Document ID"
// @Param format query string false "Export format: csv (default) or xlsx"
// @Success 200 {file} file
// @Failure 404 {object} APIResponse "Deck not found"
// @Router /decks/{id}/export [get]
func (h *DeckHandler) Export(c *gin.Context) {
	documentID := c.Param("id")
	format := c.DefaultQuery("format", "csv")

	switch format {
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="deck-%s.csv"`, documentID))
		if err := h.exportService.ExportCSV(c.Request.Context(), documentID, c.Writer); err != nil {
			HandleError(c, err)
			return
		}
		c.Status(http.StatusOK)

	case "xlsx":
		data, err := h.exportService.ExportXLSX(c.Request.Context(), documentID)
		if err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="deck-%s.xlsx"`, documentID))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
	}
}
