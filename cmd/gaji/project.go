package main

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"gaji/internal/career"
	"gaji/internal/estimator"
)

var projectYears int

var projectCmd = &cobra.Command{
	Use:   "project <profile.json>",
	Short: "Project salary progression over the coming years",
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
		// The projection only needs the numeric estimate; skip the
		// narrative call even when it is enabled.
		result, err := svc.EstimateNumeric(profile)
		if errors.Is(err, estimator.ErrNoMatch) {
			pterm.Warning.Println("Insufficient data: no salary guide positions match this profile.")
			return nil
		}
		if err != nil {
			return err
		}

		projections := career.NewProjector().Project(profile, result.Avg, projectYears)
		pterm.DefaultSection.Printfln("Projection for %s (today: %s / month)", profile.Title, idr(result.Avg))
		data := pterm.TableData{{"Year", "Level", "Projected salary"}}
		for _, pr := range projections {
			data = append(data, []string{
				fmt.Sprintf("+%d", pr.Year),
				string(pr.Level),
				idr(pr.Salary),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	projectCmd.Flags().IntVar(&projectYears, "years", 5, "Number of years to project")
	rootCmd.AddCommand(projectCmd)
}
