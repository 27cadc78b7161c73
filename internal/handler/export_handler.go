package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"declara/internal/export"
)

// ExportHandler serves spreadsheet exports for officer reporting.
type ExportHandler struct {
	exporter *export.Exporter
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Entries handles GET /export/entries.xlsx.
func (h *ExportHandler) Entries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "500"))

	f, err := h.exporter.EntriesWorkbook(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	c.Header("Content-Disposition", `attachment; filename="entries.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
