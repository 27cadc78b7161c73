package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"declara/internal/config"
	"declara/internal/handler"
	"declara/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Entry    *handler.EntryHandler
	Document *handler.DocumentHandler
	Tax      *handler.TaxHandler
	Forex    *handler.ForexHandler
	Export   *handler.ExportHandler
}

// New builds the gin engine with all routes and middleware mounted.
func New(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Actor())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		entries := api.Group("/entries")
		{
			entries.POST("", h.Entry.Create)
			entries.POST("/submit", h.Entry.Submit)
			entries.GET("", h.Entry.List)
			entries.GET("/:id", h.Entry.Get)
			entries.POST("/:id/action", h.Entry.Action)
			entries.POST("/:id/validate", h.Entry.Validate)
			entries.GET("/:id/validation", h.Entry.ValidationResults)
			entries.POST("/:id/extract", h.Entry.Extract)
			entries.POST("/:id/documents", h.Document.Upload)
			entries.GET("/:id/documents", h.Document.ListByEntry)
			entries.GET("/:id/tax", h.Tax.Get)
			entries.POST("/:id/tax/preview", h.Tax.Preview)
			entries.POST("/:id/tax/confirm", h.Tax.Confirm)
		}

		documents := api.Group("/documents")
		{
			documents.GET("/:id", h.Document.Get)
			documents.GET("/:id/url", h.Document.SignedURL)
			documents.GET("/:id/fields", h.Document.Fields)
			documents.PUT("/:id/fields/:name", h.Document.OverrideField)
			documents.POST("/:id/extract", h.Document.Extract)
		}

		api.GET("/forex/rate", h.Forex.Rate)
		api.GET("/export/entries.xlsx", h.Export.Entries)
	}

	return r
}
