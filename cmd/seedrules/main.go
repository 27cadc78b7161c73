package main

import (
	"context"
	"log"
	"time"

	"declara/internal/config"
	"declara/internal/repository/postgres"
	"declara/internal/validator"
)

// Seeds the built-in validation rule definitions so officers can toggle
// them before the first entry is ever evaluated.
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

	ruleRepo := postgres.NewValidationRuleRepo(db)
	resultRepo := postgres.NewValidationResultRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	fieldRepo := postgres.NewFieldRepo(db)

	engine := validator.NewEngine(validator.DefaultRegistry(), ruleRepo, resultRepo, docRepo, fieldRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := engine.EnsureBuiltinRules(ctx); err != nil {
		log.Fatalf("seeding rules failed: %v", err)
	}

	keys, err := ruleRepo.ListKeys(ctx)
	if err != nil {
		log.Fatalf("listing rules failed: %v", err)
	}
	log.Printf("rule definitions present: %d", len(keys))
}
