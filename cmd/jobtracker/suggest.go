package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Print resume tailoring suggestions for a job",
	Long:  "Asks the LLM provider how to tailor your resume to a job description,\ntaken from a tracked application (--job) or given directly (--description).",
	RunE:  runSuggest,
}

var suggestFlags struct {
	job         int64
	description string
	provider    string
	model       string
}

func init() {
	f := suggestCmd.Flags()
	f.Int64Var(&suggestFlags.job, "job", 0, "application id to read the description from")
	f.StringVar(&suggestFlags.description, "description", "", "job description text")
	f.StringVar(&suggestFlags.provider, "provider", "", "provider override")
	f.StringVar(&suggestFlags.model, "model", "", "model override, optionally provider/model")
	rootCmd.AddCommand(suggestCmd)
}

// descriptionFromFlags resolves a job description from --job or a direct
// --description flag, preferring the tracked record.
func descriptionFromFlags(a *app, jobID int64, description string) (string, error) {
	if jobID == 0 {
		return description, nil
	}
	app, err := a.store.GetApplication(jobID)
	if err != nil {
		return "", err
	}
	if app.JobDescription == "" {
		return "", fmt.Errorf("application #%d has no job description", jobID)
	}
	return app.JobDescription, nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	description, err := descriptionFromFlags(a, suggestFlags.job, suggestFlags.description)
	if err != nil {
		return err
	}

	suggestions, err := a.service.ResumeSuggestions(cmd.Context(), description, suggestFlags.provider, suggestFlags.model)
	if err != nil {
		return err
	}
	fmt.Println(suggestions)
	return nil
}
