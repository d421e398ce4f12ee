package main

import (
	"fmt"
	"strconv"

	"github.com/RichLyon/JobAppTracker/internal/model"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one application in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid application id %q", arg)
	}
	return id, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	app, err := a.store.GetApplication(id)
	if err != nil {
		return err
	}
	printApplication(app)
	return nil
}

func printApplication(app model.Application) {
	fmt.Printf("Application #%d\n", app.ID)
	fmt.Printf("  Company:      %s\n", app.CompanyName)
	fmt.Printf("  Position:     %s\n", app.Position)
	fmt.Printf("  Date applied: %s\n", app.DateApplied)
	fmt.Printf("  Status:       %s\n", app.Status)
	printIfSet("Salary", app.SalaryInfo)
	printIfSet("Contact", app.ContactInfo)
	printIfSet("URL", app.ApplicationURL)
	printIfSet("Resume", app.ResumePath)
	printIfSet("Cover letter", app.CoverLetterPath)
	printIfSet("Notes", app.Notes)
	printIfSet("Description", app.JobDescription)
	fmt.Printf("  Created:      %s\n", app.CreatedAt)
	fmt.Printf("  Updated:      %s\n", app.UpdatedAt)
}

func printIfSet(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %-13s %s\n", label+":", value)
}
