package main

import (
	"github.com/RichLyon/JobAppTracker/internal/browse"
	"github.com/RichLyon/JobAppTracker/internal/model"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse applications interactively (TUI)",
	RunE:  runBrowse,
}

var browseFlags struct {
	status string
	search string
}

func init() {
	f := browseCmd.Flags()
	f.StringVar(&browseFlags.status, "status", "", "filter by status")
	f.StringVar(&browseFlags.search, "search", "", "case-insensitive match on company, position or description")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	apps, err := a.store.ListApplications(model.ApplicationFilter{
		Status: browseFlags.status,
		Search: browseFlags.search,
	})
	if err != nil {
		return err
	}
	return browse.Run(apps)
}
