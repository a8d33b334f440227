package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"gaji/internal/domain"
	"gaji/internal/estimator"
	"gaji/internal/narrative"
)

var skillAdvice bool

var estimateCmd = &cobra.Command{
	Use:   "estimate <profile.json>",
	Short: "Estimate a monthly salary range for a candidate profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := loadProfile(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := buildService(cfg)
		if err != nil {
			return err
		}
		if _, err := svc.IndexRecords(guidePath(cfg)); err != nil {
			return err
		}

		result, err := svc.EstimateProfile(cmd.Context(), profile)
		if errors.Is(err, estimator.ErrNoMatch) {
			pterm.Warning.Println("Insufficient data: no salary guide positions match this profile.")
			return nil
		}
		if err != nil {
			return err
		}
		renderEstimate(profile, result)

		if skillAdvice {
			recs, err := svc.SkillRecommendations(cmd.Context(), profile)
			if err != nil || len(recs) == 0 {
				recs = narrative.DefaultSkillRecommendations()
			}
			pterm.DefaultSection.Println("Skills to develop")
			for _, r := range recs {
				pterm.Println("  - " + r)
			}
		}
		return nil
	},
}

func init() {
	estimateCmd.Flags().BoolVar(&skillAdvice, "skills", false, "Also suggest skills to develop")
	rootCmd.AddCommand(estimateCmd)
}

func renderEstimate(p domain.Profile, r domain.EstimateResult) {
	pterm.DefaultSection.Printfln("Estimate for %s", p.Title)
	pterm.Printfln("Range:      %s - %s / month", idr(r.Min), idr(r.Max))
	pterm.Printfln("Average:    %s / month", idr(r.Avg))
	pterm.Printfln("Confidence: %.0f%%", r.Confidence*100)
	pterm.Printfln("Best match: %s", r.BestMatchTitle)
	pterm.Printfln("Factors:    experience ×%.2f, education ×%.2f, location ×%.2f, skills ×%.2f",
		r.Multipliers.Experience, r.Multipliers.Education, r.Multipliers.Location, r.Multipliers.Skills)

	if len(r.Matches) > 0 {
		pterm.DefaultSection.Println("Matched positions")
		data := pterm.TableData{{"Title", "Industry", "Salary", "Similarity"}}
		limit := len(r.Matches)
		if limit > 5 {
			limit = 5
		}
		for _, m := range r.Matches[:limit] {
			data = append(data, []string{
				m.Record.JobTitle,
				m.Record.Industry,
				idr(m.Record.MonthlySalary),
				fmt.Sprintf("%.3f", m.Score),
			})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	if len(r.Recommendations) > 0 {
		pterm.DefaultSection.Println("Recommendations")
		for _, rec := range r.Recommendations {
			pterm.Println("  - " + rec)
		}
	}

	if r.Narrative != nil && r.Narrative.Explanation != "" {
		pterm.DefaultSection.Println("Analysis")
		pterm.Println(r.Narrative.Explanation)
		for _, s := range r.Narrative.Strengths {
			pterm.Println(pterm.Green("  + " + s))
		}
		for _, s := range r.Narrative.Improvements {
			pterm.Println(pterm.Yellow("  ~ " + s))
		}
		if r.Narrative.MarketInsights != "" {
			pterm.Println(r.Narrative.MarketInsights)
		}
	}
}

// idr formats a monthly figure given in millions of IDR.
func idr(millions float64) string {
	return "IDR " + humanize.Commaf(millions*1_000_000)
}
