package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Retriever.Type != "memory" || cfg.Retriever.TopK != 10 {
		t.Errorf("retriever defaults = %+v", cfg.Retriever)
	}
	if cfg.Estimator.ClampMin != 5 || cfg.Estimator.ClampMax != 500 {
		t.Errorf("clamp defaults = %+v", cfg.Estimator)
	}
	if cfg.Narrative.Enabled {
		t.Error("narrative should be disabled by default")
	}
}

func TestLoadFillsPartialConfig(t *testing.T) {
	path := writeConfig(t, `
records_path: custom/guide.json
retriever:
  top_k: 3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.RecordsPath != "custom/guide.json" {
		t.Errorf("RecordsPath = %q", cfg.RecordsPath)
	}
	if cfg.Retriever.Type != "memory" {
		t.Errorf("Retriever.Type = %q, want default memory", cfg.Retriever.Type)
	}
	if cfg.Retriever.TopK != 3 {
		t.Errorf("Retriever.TopK = %d, want 3", cfg.Retriever.TopK)
	}
	if cfg.Estimator.TieTolerance == nil || *cfg.Estimator.TieTolerance != 0.05 {
		t.Errorf("TieTolerance = %v, want default 0.05", cfg.Estimator.TieTolerance)
	}
	if cfg.Narrative.Model == "" {
		t.Error("narrative model default not applied")
	}
}

func TestLoadQdrantConfig(t *testing.T) {
	path := writeConfig(t, `
retriever:
  type: qdrant
  qdrant:
    url: http://localhost:6333
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Retriever.Qdrant.Collection != "salary_guide_2025" {
		t.Errorf("Collection = %q, want default", cfg.Retriever.Qdrant.Collection)
	}
	if cfg.Retriever.Qdrant.TimeoutSecs != 15 {
		t.Errorf("TimeoutSecs = %d, want 15", cfg.Retriever.Qdrant.TimeoutSecs)
	}
}

func TestLoadKeepsExplicitZeroes(t *testing.T) {
	path := writeConfig(t, `
estimator:
  tie_tolerance: 0
narrative:
  temperature: 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Estimator.TieTolerance == nil || *cfg.Estimator.TieTolerance != 0 {
		t.Errorf("TieTolerance = %v, want explicit 0", cfg.Estimator.TieTolerance)
	}
	if cfg.Narrative.Temperature == nil || *cfg.Narrative.Temperature != 0 {
		t.Errorf("Temperature = %v, want explicit 0", cfg.Narrative.Temperature)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown retriever type", "retriever:\n  type: elastic\n"},
		{"qdrant without url", "retriever:\n  type: qdrant\n"},
		{"inverted clamp range", "estimator:\n  clamp_min: 100\n  clamp_max: 50\n"},
		{"negative tie tolerance", "estimator:\n  tie_tolerance: -0.1\n"},
		{"malformed yaml", "retriever: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := defaultConfig()
	want.Retriever.TopK = 7
	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Retriever.TopK != 7 {
		t.Errorf("TopK after round trip = %d, want 7", got.Retriever.TopK)
	}
	if got.Narrative.Model != want.Narrative.Model {
		t.Errorf("Model = %q, want %q", got.Narrative.Model, want.Narrative.Model)
	}
}
