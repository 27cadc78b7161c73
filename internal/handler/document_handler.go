package handler

import (
	"github.com/gin-gonic/gin"

	"declara/internal/domain"
	"declara/internal/middleware"
	"declara/internal/service"
)

// DocumentHandler serves document upload, retrieval, and field endpoints.
type DocumentHandler struct {
	documents  *service.DocumentService
	extraction *service.ExtractionService
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(documents *service.DocumentService, extraction *service.ExtractionService) *DocumentHandler {
	return &DocumentHandler{documents: documents, extraction: extraction}
}

// Upload handles POST /entries/:id/documents (multipart form with "file"
// and "document_type").
func (h *DocumentHandler) Upload(c *gin.Context) {
	entryID, ok := parseID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, 400, "MISSING_FILE", "multipart field \"file\" is required")
		return
	}
	docType := domain.DocumentType(c.PostForm("document_type"))

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, 400, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	contentType := fileHeader.Header.Get("Content-Type")
	actor := middleware.GetActor(c)

	doc, err := h.documents.Upload(c.Request.Context(), entryID, docType,
		fileHeader.Filename, contentType, fileHeader.Size, file, actor)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, doc)
}

// ListByEntry handles GET /entries/:id/documents.
func (h *DocumentHandler) ListByEntry(c *gin.Context) {
	entryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	docs, err := h.documents.ListByEntry(c.Request.Context(), entryID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, docs)
}

// Get handles GET /documents/:id.
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	doc, err := h.documents.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// SignedURL handles GET /documents/:id/url.
func (h *DocumentHandler) SignedURL(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	url, err := h.documents.SignedURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// Fields handles GET /documents/:id/fields.
func (h *DocumentHandler) Fields(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	slots, err := h.documents.FieldView(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, slots)
}

type overrideRequest struct {
	Value string `json:"value" binding:"required"`
}

// OverrideField handles PUT /documents/:id/fields/:name.
func (h *DocumentHandler) OverrideField(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	fieldName := c.Param("name")

	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "INVALID_BODY", "value is required")
		return
	}

	actor := middleware.GetActor(c)
	if err := h.documents.OverrideField(c.Request.Context(), id, fieldName, req.Value, actor); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"field_name": fieldName, "value": req.Value})
}

// Extract handles POST /documents/:id/extract.
func (h *DocumentHandler) Extract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req extractRequest
	_ = c.ShouldBindJSON(&req)

	actor := middleware.GetActor(c)
	result, err := h.extraction.ExtractDocument(c.Request.Context(), id, req.Fresh, actor)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}
