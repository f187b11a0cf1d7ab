package main

import (
	"fmt"
	"log"
	"time"

	"slidetutor/internal/config"
	"slidetutor/internal/explain"
	"slidetutor/internal/handler"
	"slidetutor/internal/port"
	"slidetutor/internal/prompt"
	"slidetutor/internal/render"
	"slidetutor/internal/repository/postgres"
	"slidetutor/internal/router"
	"slidetutor/internal/service"
	localstorage "slidetutor/internal/storage/local"
	s3storage "slidetutor/internal/storage/s3"
	"slidetutor/internal/vision/gemini"
)

// @title SlideTutor API
// @version 1.0
// @description Slide deck explanation service: upload PDF lecture decks and retrieve per-page AI explanations.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	docRepo := postgres.NewDocumentRepo(db)
	expRepo := postgres.NewExplanationRepo(db)

	// Initialize storage
	var storage port.ObjectStorage
	switch cfg.Storage.Backend {
	case "s3":
		storage, err = s3storage.NewS3Client(&cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	case "local":
		storage, err = localstorage.NewLocalStorage(cfg.Storage.LocalDir)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}

	// Initialize the rendering and explanation pipeline
	renderer := render.NewFitzRenderer(cfg.Render.DPI)

	visionModel, err := gemini.NewClient(&cfg.Gemini)
	if err != nil {
		return err
	}

	mode, err := prompt.ParseMode(cfg.Explain.Mode)
	if err != nil {
		return err
	}
	prompts := prompt.NewBuilder(mode)

	generator := explain.NewGenerator(visionModel, explain.GeneratorConfig{
		MaxAttempts:     cfg.Explain.MaxAttempts,
		RetryDelay:      time.Duration(cfg.Explain.RetryDelaySecs) * time.Second,
		MinTextLen:      cfg.Explain.MinTextLen,
		Temperature:     cfg.Explain.Temperature,
		MaxOutputTokens: cfg.Explain.MaxOutputTokens,
	})

	// Initialize services
	deckSvc := service.NewDeckService(docRepo, storage, renderer, &cfg.Upload, cfg.Storage.KeyPrefix)
	explainSvc := service.NewExplainService(docRepo, expRepo, storage, renderer, generator, prompts, cfg.Explain.ContextPages)
	exportSvc := service.NewExportService(docRepo, expRepo)

	// Initialize handlers
	deckH := handler.NewDeckHandler(deckSvc, explainSvc, exportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, deckH, healthH)

	log.Printf("Server starting on %s (storage=%s, model=%s, mode=%s)",
		cfg.Server.Port, cfg.Storage.Backend, cfg.Gemini.Model, prompts.Mode())
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
