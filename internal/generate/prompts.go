package generate

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/resume_suggestions.md
var resumeSuggestionsRaw string

//go:embed prompts/cover_letter.md
var coverLetterRaw string

// Prompt templates, parsed once at package init and reused on every call.
var (
	resumeSuggestionsTemplate = template.Must(template.New("resume_suggestions").Parse(resumeSuggestionsRaw))
	coverLetterTemplate       = template.Must(template.New("cover_letter").Parse(coverLetterRaw))
)

// promptDateLayout renders dates as "March 5, 2024" inside prompts and
// assembled documents.
const promptDateLayout = "January 2, 2006"
