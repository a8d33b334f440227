package main

import (
	"fmt"
	"log"
	"time"

	"gaji/internal/config"
	"gaji/internal/domain"
	"gaji/internal/embedding/tfidf"
	"gaji/internal/estimator"
	"gaji/internal/multiplier"
	"gaji/internal/narrative"
	"gaji/internal/records"
	"gaji/internal/retrieval"
	"gaji/internal/service"
	"gaji/internal/vectorstore/memory"
	"gaji/internal/vectorstore/qdrant"
)

// buildService assembles the estimate service from config. The
// retrieval backend is picked here, once; an unusable backend is a
// startup error, never a silent fallback.
func buildService(cfg *config.AppConfig) (*service.EstimateService, error) {
	var store domain.VectorStore
	switch cfg.Retriever.Type {
	case "memory", "":
		store = memory.NewStorage()
	case "qdrant":
		if cfg.Retriever.Qdrant == nil {
			return nil, fmt.Errorf("qdrant retriever config missing")
		}
		store = qdrant.NewStorage(qdrant.Config{
			URL:        cfg.Retriever.Qdrant.URL,
			APIKey:     cfg.Retriever.Qdrant.APIKey,
			Collection: cfg.Retriever.Qdrant.Collection,
			Timeout:    time.Duration(cfg.Retriever.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown retriever type: %s", cfg.Retriever.Type)
	}
	retriever := retrieval.New(tfidf.NewEmbedder(), store)

	est := estimator.New(multiplier.Default(), estimator.Config{
		TieTolerance:  cfg.Estimator.TieTolerance,
		BlendLimit:    cfg.Estimator.BlendLimit,
		MinCandidates: cfg.Estimator.MinCandidates,
		ClampMin:      cfg.Estimator.ClampMin,
		ClampMax:      cfg.Estimator.ClampMax,
	})

	var narrator domain.Narrator
	if cfg.Narrative.Enabled {
		client, err := narrative.NewClient(narrative.Config{
			BaseURL:     cfg.Narrative.BaseURL,
			APIKeyEnv:   cfg.Narrative.APIKeyEnv,
			Model:       cfg.Narrative.Model,
			Timeout:     time.Duration(cfg.Narrative.TimeoutSecs) * time.Second,
			MaxTokens:   cfg.Narrative.MaxTokens,
			Temperature: cfg.Narrative.Temperature,
		})
		if err != nil {
			log.Printf("narrative disabled: %v", err)
		} else {
			narrator = client
		}
	}

	return service.NewEstimateService(records.NewStore(), retriever, est, narrator, cfg.Retriever.TopK), nil
}
