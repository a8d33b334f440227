package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gaji/internal/config"
	"gaji/internal/domain"
	"gaji/internal/tui"
)

var (
	cfgPath     string
	recordsPath string
)

var rootCmd = &cobra.Command{
	Use:   "gaji",
	Short: "Salary estimation over the Indonesia Salary Guide",
	Long: `gaji indexes a salary guide table and answers job-title queries by
semantic similarity. It estimates a monthly salary range for a candidate
profile by applying experience, education, location and skill factors to
the best-matching guide positions.

Run without a subcommand to browse the salary table interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := buildService(cfg)
		if err != nil {
			return err
		}
		count, err := svc.IndexRecords(guidePath(cfg))
		if err != nil {
			return err
		}
		summary := fmt.Sprintf("Indexed %d salary records (%s backend)", count, cfg.Retriever.Type)
		m := tui.New(svc, summary)
		if _, err := tea.NewProgram(m).Run(); err != nil {
			return err
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config (default ./config.yaml, then ~/.config/gaji/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&recordsPath, "records", "", "Path to the salary guide JSON (overrides config)")
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}

func guidePath(cfg *config.AppConfig) string {
	if recordsPath != "" {
		return recordsPath
	}
	return cfg.RecordsPath
}

// loadProfile reads a candidate profile from a JSON file. A missing
// education level defaults to bachelor, matching the salary guide's
// reference population.
func loadProfile(path string) (domain.Profile, error) {
	var p domain.Profile
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile JSON: %w", err)
	}
	if p.Education == "" {
		p.Education = domain.EducationBachelor
	}
	return p, nil
}
