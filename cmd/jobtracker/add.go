package main

import (
	"fmt"
	"time"

	"github.com/RichLyon/JobAppTracker/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new job application",
	RunE:  runAdd,
}

var addFlags struct {
	company     string
	position    string
	date        string
	status      string
	description string
	salary      string
	contact     string
	url         string
	notes       string
	resume      string
}

func init() {
	f := addCmd.Flags()
	f.StringVar(&addFlags.company, "company", "", "company name (required)")
	f.StringVar(&addFlags.position, "position", "", "position title (required)")
	f.StringVar(&addFlags.date, "date", "", "date applied, YYYY-MM-DD (default: today)")
	f.StringVar(&addFlags.status, "status", model.StatusApplied, "application status")
	f.StringVar(&addFlags.description, "description", "", "job description text")
	f.StringVar(&addFlags.salary, "salary", "", "salary information")
	f.StringVar(&addFlags.contact, "contact", "", "recruiter or contact info")
	f.StringVar(&addFlags.url, "url", "", "application URL")
	f.StringVar(&addFlags.notes, "notes", "", "free-form notes")
	f.StringVar(&addFlags.resume, "resume", "", "path to the resume used, .docx")
	addCmd.MarkFlagRequired("company")
	addCmd.MarkFlagRequired("position")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if err := validStatus(addFlags.status); err != nil {
		return err
	}
	date := addFlags.date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.store.AddApplication(model.Application{
		CompanyName:    addFlags.company,
		Position:       addFlags.position,
		DateApplied:    date,
		Status:         addFlags.status,
		JobDescription: addFlags.description,
		SalaryInfo:     addFlags.salary,
		ContactInfo:    addFlags.contact,
		ApplicationURL: addFlags.url,
		Notes:          addFlags.notes,
		ResumePath:     addFlags.resume,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added application #%d: %s at %s\n", id, addFlags.position, addFlags.company)
	return nil
}
