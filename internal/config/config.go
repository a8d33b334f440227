package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RetrieverConfig selects and configures the similarity search backend.
// The choice is explicit: there is no runtime fallback between backends.
type RetrieverConfig struct {
	Type   string        `yaml:"type"` // "memory" or "qdrant"
	TopK   int           `yaml:"top_k"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EstimatorConfig tunes the salary estimation policy. TieTolerance is
// a pointer so "tie_tolerance: 0" (blend exact ties only) stays
// distinguishable from leaving the key out.
type EstimatorConfig struct {
	TieTolerance  *float64 `yaml:"tie_tolerance"`
	BlendLimit    int      `yaml:"blend_limit"`
	MinCandidates int      `yaml:"min_candidates"`
	// Plausible output range, monthly millions IDR.
	ClampMin float64 `yaml:"clamp_min"`
	ClampMax float64 `yaml:"clamp_max"`
}

// NarrativeConfig configures the optional LLM narrative service.
// Temperature is a pointer for the same zero-vs-unset reason as
// EstimatorConfig.TieTolerance.
type NarrativeConfig struct {
	Enabled     bool     `yaml:"enabled"`
	BaseURL     string   `yaml:"base_url"`
	APIKeyEnv   string   `yaml:"api_key_env"`
	Model       string   `yaml:"model"`
	TimeoutSecs int      `yaml:"timeout_secs"`
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	RecordsPath string          `yaml:"records_path"`
	Retriever   RetrieverConfig `yaml:"retriever"`
	Estimator   EstimatorConfig `yaml:"estimator"`
	Narrative   NarrativeConfig `yaml:"narrative"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/gaji/config.yaml.
// If neither exists, it writes defaults to ~/.config/gaji/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gaji", "config.yaml"), nil
}

func float64Ptr(v float64) *float64 { return &v }

func defaultConfig() *AppConfig {
	return &AppConfig{
		RecordsPath: "data/salary_guide_2025.json",
		Retriever:   RetrieverConfig{Type: "memory", TopK: 10},
		Estimator: EstimatorConfig{
			TieTolerance:  float64Ptr(0.05),
			BlendLimit:    3,
			MinCandidates: 3,
			ClampMin:      5,
			ClampMax:      500,
		},
		Narrative: NarrativeConfig{
			Enabled:     false,
			BaseURL:     "https://openrouter.ai/api/v1",
			APIKeyEnv:   "OPENROUTER_API_KEY",
			Model:       "qwen/qwen-2.5-72b-instruct",
			TimeoutSecs: 30,
			MaxTokens:   2000,
			Temperature: float64Ptr(0.7),
		},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.RecordsPath == "" {
		cfg.RecordsPath = def.RecordsPath
	}
	if cfg.Retriever.Type == "" {
		cfg.Retriever.Type = "memory"
	}
	if cfg.Retriever.TopK == 0 {
		cfg.Retriever.TopK = def.Retriever.TopK
	}
	if cfg.Retriever.Type == "qdrant" && cfg.Retriever.Qdrant != nil {
		if cfg.Retriever.Qdrant.Collection == "" {
			cfg.Retriever.Qdrant.Collection = "salary_guide_2025"
		}
		if cfg.Retriever.Qdrant.TimeoutSecs == 0 {
			cfg.Retriever.Qdrant.TimeoutSecs = 15
		}
	}
	if cfg.Estimator.TieTolerance == nil {
		cfg.Estimator.TieTolerance = def.Estimator.TieTolerance
	}
	if cfg.Estimator.BlendLimit == 0 {
		cfg.Estimator.BlendLimit = def.Estimator.BlendLimit
	}
	if cfg.Estimator.MinCandidates == 0 {
		cfg.Estimator.MinCandidates = def.Estimator.MinCandidates
	}
	if cfg.Estimator.ClampMin == 0 {
		cfg.Estimator.ClampMin = def.Estimator.ClampMin
	}
	if cfg.Estimator.ClampMax == 0 {
		cfg.Estimator.ClampMax = def.Estimator.ClampMax
	}
	if cfg.Narrative.BaseURL == "" {
		cfg.Narrative.BaseURL = def.Narrative.BaseURL
	}
	if cfg.Narrative.APIKeyEnv == "" {
		cfg.Narrative.APIKeyEnv = def.Narrative.APIKeyEnv
	}
	if cfg.Narrative.Model == "" {
		cfg.Narrative.Model = def.Narrative.Model
	}
	if cfg.Narrative.TimeoutSecs == 0 {
		cfg.Narrative.TimeoutSecs = def.Narrative.TimeoutSecs
	}
	if cfg.Narrative.MaxTokens == 0 {
		cfg.Narrative.MaxTokens = def.Narrative.MaxTokens
	}
	if cfg.Narrative.Temperature == nil {
		cfg.Narrative.Temperature = def.Narrative.Temperature
	}
}

func validate(cfg *AppConfig) error {
	switch cfg.Retriever.Type {
	case "memory":
	case "qdrant":
		if cfg.Retriever.Qdrant == nil || cfg.Retriever.Qdrant.URL == "" {
			return errors.New("qdrant retriever requires retriever.qdrant.url")
		}
	default:
		return fmt.Errorf("unknown retriever type %q", cfg.Retriever.Type)
	}
	if cfg.Estimator.ClampMax <= cfg.Estimator.ClampMin {
		return fmt.Errorf("estimator clamp range invalid: min %v, max %v", cfg.Estimator.ClampMin, cfg.Estimator.ClampMax)
	}
	if cfg.Estimator.TieTolerance != nil && *cfg.Estimator.TieTolerance < 0 {
		return fmt.Errorf("estimator tie tolerance must not be negative: %v", *cfg.Estimator.TieTolerance)
	}
	return nil
}
