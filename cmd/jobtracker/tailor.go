package main

import (
	"fmt"

	"github.com/RichLyon/JobAppTracker/internal/model"
	"github.com/spf13/cobra"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Build a tailored copy of your resume for a job",
	Long: "Generates tailoring suggestions for a job and writes a copy of the base\n" +
		"resume with the suggestions appended, into the resume output directory.",
	RunE: runTailor,
}

var tailorFlags struct {
	job         int64
	description string
	company     string
	position    string
	resume      string
	provider    string
	model       string
}

func init() {
	f := tailorCmd.Flags()
	f.Int64Var(&tailorFlags.job, "job", 0, "application id to tailor for")
	f.StringVar(&tailorFlags.description, "description", "", "job description text (if no --job)")
	f.StringVar(&tailorFlags.company, "company", "", "company name for the output filename")
	f.StringVar(&tailorFlags.position, "position", "", "position title for the output filename")
	f.StringVar(&tailorFlags.resume, "resume", "", "base resume .docx (default: the application's resume)")
	f.StringVar(&tailorFlags.provider, "provider", "", "provider override")
	f.StringVar(&tailorFlags.model, "model", "", "model override, optionally provider/model")
	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	description := tailorFlags.description
	company := tailorFlags.company
	position := tailorFlags.position
	basePath := tailorFlags.resume

	if tailorFlags.job != 0 {
		record, err := a.store.GetApplication(tailorFlags.job)
		if err != nil {
			return err
		}
		if description == "" {
			description = record.JobDescription
		}
		if company == "" {
			company = record.CompanyName
		}
		if position == "" {
			position = record.Position
		}
		if basePath == "" {
			basePath = record.ResumePath
		}
	}
	if basePath == "" {
		return &model.ValidationError{Field: "resume"}
	}

	suggestions, err := a.service.ResumeSuggestions(cmd.Context(), description, tailorFlags.provider, tailorFlags.model)
	if err != nil {
		return err
	}

	doc, err := a.assembler.AssembleResume(basePath, company, position, suggestions)
	if err != nil {
		return err
	}
	fmt.Printf("Tailored resume written to %s\n", doc.Path)
	return nil
}
