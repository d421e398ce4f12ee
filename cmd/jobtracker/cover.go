package main

import (
	"fmt"

	"github.com/RichLyon/JobAppTracker/internal/generate"
	"github.com/RichLyon/JobAppTracker/internal/model"
	"github.com/spf13/cobra"
)

var coverCmd = &cobra.Command{
	Use:   "cover",
	Short: "Generate a cover letter for a job",
	Long: "Drafts a cover letter with the LLM provider and writes it as a .docx to\n" +
		"the cover letter output directory. With --job, the tracked application\n" +
		"supplies company, position, description and resume, and the written\n" +
		"letter is linked back to the record.",
	RunE: runCover,
}

var coverFlags struct {
	job         int64
	company     string
	position    string
	description string
	resume      string
	provider    string
	model       string
}

func init() {
	f := coverCmd.Flags()
	f.Int64Var(&coverFlags.job, "job", 0, "application id to write the letter for")
	f.StringVar(&coverFlags.company, "company", "", "company name")
	f.StringVar(&coverFlags.position, "position", "", "position title")
	f.StringVar(&coverFlags.description, "description", "", "job description text")
	f.StringVar(&coverFlags.resume, "resume", "", "resume .docx to ground the letter in")
	f.StringVar(&coverFlags.provider, "provider", "", "provider override")
	f.StringVar(&coverFlags.model, "model", "", "model override, optionally provider/model")
	rootCmd.AddCommand(coverCmd)
}

func runCover(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	company := coverFlags.company
	position := coverFlags.position
	description := coverFlags.description
	resumePath := coverFlags.resume

	if coverFlags.job != 0 {
		record, err := a.store.GetApplication(coverFlags.job)
		if err != nil {
			return err
		}
		if company == "" {
			company = record.CompanyName
		}
		if position == "" {
			position = record.Position
		}
		if description == "" {
			description = record.JobDescription
		}
		if resumePath == "" {
			resumePath = record.ResumePath
		}
	}

	var resumeText string
	if resumePath != "" {
		if resumeText, err = a.docx.ExtractText(resumePath); err != nil {
			return err
		}
	}

	prof, err := a.store.GetProfile()
	if err != nil {
		return err
	}
	applicant := model.ApplicantFromProfile(prof)

	body, err := a.service.CoverLetter(cmd.Context(), generate.CoverLetterInput{
		JobDescription: description,
		Company:        company,
		Position:       position,
		ResumeText:     resumeText,
		Applicant:      applicant,
		Provider:       coverFlags.provider,
		Model:          coverFlags.model,
	})
	if err != nil {
		return err
	}

	doc, err := a.assembler.AssembleCoverLetter(applicant, company, position, body)
	if err != nil {
		return err
	}
	fmt.Printf("Cover letter written to %s\n", doc.Path)

	if coverFlags.job != 0 {
		err := a.store.UpdateApplication(coverFlags.job, model.ApplicationUpdate{CoverLetterPath: &doc.Path})
		if err != nil {
			return fmt.Errorf("link cover letter to application #%d: %w", coverFlags.job, err)
		}
		fmt.Printf("Linked to application #%d\n", coverFlags.job)
	}
	return nil
}
