package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	similarIndustry string
	similarLimit    int
)

var similarCmd = &cobra.Command{
	Use:   "similar <job title>",
	Short: "List salary guide roles related to a job title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]
		for _, a := range args[1:] {
			title += " " + a
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
		matches, err := svc.SimilarRoles(title, similarIndustry, similarLimit)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			pterm.Warning.Printfln("No roles related to %q found.", title)
			return nil
		}
		data := pterm.TableData{{"Title", "Industry", "Category", "Salary", "Similarity"}}
		for _, m := range matches {
			data = append(data, []string{
				m.Record.JobTitle,
				m.Record.Industry,
				m.Record.Category,
				idr(m.Record.MonthlySalary),
				fmt.Sprintf("%.3f", m.Score),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	similarCmd.Flags().StringVar(&similarIndustry, "industry", "", "Industry hint for the search")
	similarCmd.Flags().IntVar(&similarLimit, "limit", 5, "Maximum number of related roles")
	rootCmd.AddCommand(similarCmd)
}
