package main

import (
	"fmt"

	"github.com/RichLyon/JobAppTracker/internal/model"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an application",
	Long:  "Only the flags you pass are changed; everything else is left as-is.\nPass an empty string to clear an optional field.",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var updateFlags struct {
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
	coverLetter string
}

func init() {
	f := updateCmd.Flags()
	f.StringVar(&updateFlags.company, "company", "", "company name")
	f.StringVar(&updateFlags.position, "position", "", "position title")
	f.StringVar(&updateFlags.date, "date", "", "date applied, YYYY-MM-DD")
	f.StringVar(&updateFlags.status, "status", "", "application status")
	f.StringVar(&updateFlags.description, "description", "", "job description text")
	f.StringVar(&updateFlags.salary, "salary", "", "salary information")
	f.StringVar(&updateFlags.contact, "contact", "", "recruiter or contact info")
	f.StringVar(&updateFlags.url, "url", "", "application URL")
	f.StringVar(&updateFlags.notes, "notes", "", "free-form notes")
	f.StringVar(&updateFlags.resume, "resume", "", "path to the resume used")
	f.StringVar(&updateFlags.coverLetter, "cover-letter", "", "path to the cover letter used")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	// Changed() distinguishes "--notes ''" (clear) from the flag being absent.
	var upd model.ApplicationUpdate
	set := func(name string, dst **string, value *string) {
		if cmd.Flags().Changed(name) {
			*dst = value
		}
	}
	set("company", &upd.CompanyName, &updateFlags.company)
	set("position", &upd.Position, &updateFlags.position)
	set("date", &upd.DateApplied, &updateFlags.date)
	set("status", &upd.Status, &updateFlags.status)
	set("description", &upd.JobDescription, &updateFlags.description)
	set("salary", &upd.SalaryInfo, &updateFlags.salary)
	set("contact", &upd.ContactInfo, &updateFlags.contact)
	set("url", &upd.ApplicationURL, &updateFlags.url)
	set("notes", &upd.Notes, &updateFlags.notes)
	set("resume", &upd.ResumePath, &updateFlags.resume)
	set("cover-letter", &upd.CoverLetterPath, &updateFlags.coverLetter)

	if upd == (model.ApplicationUpdate{}) {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}
	if upd.Status != nil {
		if err := validStatus(*upd.Status); err != nil {
			return err
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.UpdateApplication(id, upd); err != nil {
		return err
	}
	fmt.Printf("Updated application #%d\n", id)
	return nil
}
