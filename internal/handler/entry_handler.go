package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"declara/internal/domain"
	"declara/internal/middleware"
	"declara/internal/service"
)

// EntryHandler serves the entry lifecycle endpoints.
type EntryHandler struct {
	entries    *service.EntryService
	documents  *service.DocumentService
	validation *service.ValidationService
	extraction *service.ExtractionService
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(entries *service.EntryService, documents *service.DocumentService, validation *service.ValidationService, extraction *service.ExtractionService) *EntryHandler {
	return &EntryHandler{entries: entries, documents: documents, validation: validation, extraction: extraction}
}

// Create handles POST /entries.
func (h *EntryHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)
	entry, err := h.entries.Create(c.Request.Context(), actor)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, entry)
}

// submitFormFields maps multipart form keys to document types for the
// one-shot broker submission.
var submitFormFields = map[string]domain.DocumentType{
	"gd":           domain.DocTypeGD,
	"invoice":      domain.DocTypeInvoice,
	"packing_list": domain.DocTypePackingList,
	"awb":          domain.DocTypeAWB,
}

// Submit handles POST /entries/submit: creates the entry and uploads every
// attached document in one call. Form keys gd, invoice, packing_list, awb
// each carry one optional file.
func (h *EntryHandler) Submit(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, 400, "INVALID_BODY", "multipart form expected")
		return
	}

	actor := middleware.GetActor(c)
	ctx := c.Request.Context()

	entry, err := h.entries.Create(ctx, actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	docs := make([]interface{}, 0, len(submitFormFields))
	for key, docType := range submitFormFields {
		headers := form.File[key]
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		file, err := fh.Open()
		if err != nil {
			RespondError(c, 400, "INVALID_BODY", "could not read uploaded "+key)
			return
		}
		doc, err := h.documents.Upload(ctx, entry.ID, docType, fh.Filename, fh.Header.Get("Content-Type"), fh.Size, file, actor)
		_ = file.Close()
		if err != nil {
			HandleError(c, err)
			return
		}
		docs = append(docs, doc)
	}

	RespondCreated(c, gin.H{"entry": entry, "documents": docs})
}

// List handles GET /entries.
func (h *EntryHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	filter := service.ListFilter{Offset: offset, Limit: limit}
	if raw := c.Query("created_by"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, 400, "INVALID_ID", "created_by is not a valid id")
			return
		}
		filter.CreatedBy = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.EntryStatus(raw)
		filter.Status = &status
	}

	entries, total, err := h.entries.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /entries/:id.
func (h *EntryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entry, err := h.entries.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entry)
}

type actionRequest struct {
	Action  string `json:"action" binding:"required"`
	Remarks string `json:"remarks"`
}

// Action handles POST /entries/:id/action.
func (h *EntryHandler) Action(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "INVALID_BODY", "action is required")
		return
	}

	actor := middleware.GetActor(c)
	entry, err := h.entries.OfficerAction(c.Request.Context(), id, domain.OfficerAction(req.Action), req.Remarks, actor)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entry)
}

// Validate handles POST /entries/:id/validate.
func (h *EntryHandler) Validate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	results, err := h.validation.Evaluate(c.Request.Context(), id, actor)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, results)
}

// ValidationResults handles GET /entries/:id/validation.
func (h *EntryHandler) ValidationResults(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	results, err := h.validation.Results(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, results)
}

type extractRequest struct {
	Fresh bool `json:"fresh"`
}

// Extract handles POST /entries/:id/extract.
func (h *EntryHandler) Extract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req extractRequest
	_ = c.ShouldBindJSON(&req)

	actor := middleware.GetActor(c)
	results, err := h.extraction.ExtractEntry(c.Request.Context(), id, req.Fresh, actor)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, results)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		RespondError(c, 400, "INVALID_ID", param+" is not a valid id")
		return uuid.Nil, false
	}
	return id, true
}
