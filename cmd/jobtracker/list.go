package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/RichLyon/JobAppTracker/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked applications",
	RunE:  runList,
}

var listFlags struct {
	status string
	search string
	limit  int
	offset int
}

func init() {
	f := listCmd.Flags()
	f.StringVar(&listFlags.status, "status", "", "filter by status")
	f.StringVar(&listFlags.search, "search", "", "case-insensitive match on company, position or description")
	f.IntVar(&listFlags.limit, "limit", 0, "max rows to show (0 = all)")
	f.IntVar(&listFlags.offset, "offset", 0, "rows to skip")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	apps, err := a.store.ListApplications(model.ApplicationFilter{
		Status: listFlags.status,
		Search: listFlags.search,
		Limit:  listFlags.limit,
		Offset: listFlags.offset,
	})
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		fmt.Println("No applications found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPANY\tPOSITION\tDATE\tSTATUS")
	for _, app := range apps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			app.ID, app.CompanyName, app.Position, app.DateApplied, app.Status)
	}
	return w.Flush()
}
