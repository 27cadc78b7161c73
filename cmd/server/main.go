package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"declara/internal/audit"
	"declara/internal/config"
	"declara/internal/export"
	"declara/internal/extract"
	"declara/internal/extract/textlayer"
	"declara/internal/extract/vision"
	"declara/internal/forex"
	"declara/internal/handler"
	"declara/internal/repository/postgres"
	"declara/internal/router"
	"declara/internal/service"
	s3store "declara/internal/storage/s3"
	"declara/internal/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	storage, err := s3store.NewObjectStore(&cfg.S3)
	if err != nil {
		log.Fatalf("failed to create object store: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = rdb.Close() }()

	// Repositories
	entryRepo := postgres.NewEntryRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	fieldRepo := postgres.NewFieldRepo(db)
	ruleRepo := postgres.NewValidationRuleRepo(db)
	resultRepo := postgres.NewValidationResultRepo(db)
	taxRepo := postgres.NewTaxComputationRepo(db)
	auditSink := audit.NewSink(db)

	// Extraction chain: vision first, text layer second, synthetic fills
	// whatever remains.
	chain := extract.NewChain(
		vision.NewClient(&cfg.Vision),
		textlayer.NewStrategy(),
	)

	// Exchange rates: live provider behind a Redis cache, fallback constant
	// behind everything.
	rateProvider := forex.NewCachedProvider(forex.NewProvider(&cfg.Forex), rdb, cfg.Forex.CacheTTL)
	rateResolver := forex.NewResolver(rateProvider, &cfg.Forex)

	// Validation engine
	engine := validator.NewEngine(validator.DefaultRegistry(), ruleRepo, resultRepo, docRepo, fieldRepo)

	// Services
	entryService := service.NewEntryService(entryRepo, taxRepo, resultRepo, engine, auditSink)
	documentService := service.NewDocumentService(docRepo, entryRepo, fieldRepo, storage, auditSink, &cfg.S3, &cfg.Policy)
	extractionService := service.NewExtractionService(docRepo, fieldRepo, storage, chain, auditSink, cfg.S3.Bucket, cfg.Extraction.Concurrency)
	validationService := service.NewValidationService(engine, resultRepo, auditSink)
	taxService := service.NewTaxService(entryRepo, docRepo, fieldRepo, taxRepo, rateResolver, auditSink)
	exporter := export.NewExporter(entryRepo, taxRepo)

	// HTTP layer
	r := router.New(cfg, router.Handlers{
		Entry:    handler.NewEntryHandler(entryService, documentService, validationService, extractionService),
		Document: handler.NewDocumentHandler(documentService, extractionService),
		Tax:      handler.NewTaxHandler(taxService),
		Forex:    handler.NewForexHandler(rateResolver),
		Export:   handler.NewExportHandler(exporter),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("server listening on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	log.Println("server stopped")
}
