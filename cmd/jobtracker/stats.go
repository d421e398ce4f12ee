package main

import (
	"fmt"
	"sort"

	"github.com/RichLyon/JobAppTracker/internal/model"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize tracked applications",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.store.Statistics()
	if err != nil {
		return err
	}

	fmt.Printf("Total applications: %d\n", stats.Total)
	if stats.Total == 0 {
		return nil
	}

	fmt.Println("\nBy status:")
	for _, status := range model.Statuses {
		if n := stats.StatusCounts[status]; n > 0 {
			fmt.Printf("  %-13s %d\n", status, n)
		}
	}

	months := make([]string, 0, len(stats.ByMonth))
	for m := range stats.ByMonth {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	fmt.Println("\nBy month:")
	for _, m := range months {
		fmt.Printf("  %s  %d\n", m, stats.ByMonth[m])
	}

	fmt.Println("\nMost recent:")
	for _, app := range stats.Recent {
		fmt.Printf("  #%-4d %s / %s (%s)\n", app.ID, app.CompanyName, app.Position, app.DateApplied)
	}
	return nil
}
