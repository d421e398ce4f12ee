package document

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RichLyon/JobAppTracker/internal/model"
)

// Artifact kinds used in structured filenames.
const (
	kindResume      = "Resume"
	kindCoverLetter = "Cover Letter"
)

// Date rendered into assembled cover letters.
const letterDateLayout = "January 2, 2006"

// filenameSanitizer strips characters that are unsafe in filenames on any
// supported platform.
var filenameSanitizer = strings.NewReplacer(
	"/", "-", "\\", "-", ":", "-", "*", "-", "?", "-",
	`"`, "-", "<", "-", ">", "-", "|", "-",
)

// Assembler turns generated text plus structured metadata into persisted
// document artifacts with deterministic names.
type Assembler struct {
	writer    model.DocumentWriter
	resumeDir string
	coverDir  string
	now       func() time.Time
}

// NewAssembler creates an assembler writing resumes and cover letters into
// the two given directories.
func NewAssembler(writer model.DocumentWriter, resumeDir, coverDir string) *Assembler {
	return &Assembler{
		writer:    writer,
		resumeDir: resumeDir,
		coverDir:  coverDir,
		now:       time.Now,
	}
}

// AssembleResume appends a labeled "Tailoring Suggestions" section to a
// copy of the base resume and saves it under the resumes directory. The
// base document is never mutated. Company and position feed the artifact
// name and may be empty.
func (a *Assembler) AssembleResume(basePath, company, position, suggestions string) (model.GeneratedDocument, error) {
	doc, err := a.writer.OpenDocument(basePath)
	if err != nil {
		return model.GeneratedDocument{}, err
	}

	doc.AddHeading("Tailoring Suggestions")
	doc.AddParagraph(suggestions)

	out := a.outputPath(a.resumeDir, company, position, kindResume, "custom_resume")
	if err := a.save(doc, out); err != nil {
		return model.GeneratedDocument{}, err
	}
	return model.GeneratedDocument{Path: out, Preview: suggestions}, nil
}

// AssembleCoverLetter lays out a complete letter document: contact block,
// date, recipient placeholders, greeting, body paragraphs and closing.
func (a *Assembler) AssembleCoverLetter(applicant model.Applicant, company, position, body string) (model.GeneratedDocument, error) {
	doc := a.writer.NewDocument()

	for _, line := range []string{applicant.Name, applicant.Address, applicant.Phone, applicant.Email} {
		if line != "" {
			doc.AddParagraph(line)
		}
	}

	doc.AddParagraph(a.now().Format(letterDateLayout))
	doc.AddParagraph("")

	doc.AddParagraph("Hiring Manager")
	doc.AddParagraph(company)
	doc.AddParagraph("Company Address")
	doc.AddParagraph("City, State ZIP")
	doc.AddParagraph("")

	doc.AddParagraph("Dear Hiring Manager,")

	for _, para := range strings.Split(body, "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			doc.AddParagraph(para)
		}
	}

	doc.AddParagraph("")
	doc.AddParagraph("Sincerely,")
	doc.AddParagraph("")
	if applicant.Name != "" {
		doc.AddParagraph(applicant.Name)
	} else {
		doc.AddParagraph("[Your Name]")
	}

	out := a.outputPath(a.coverDir, company, position, kindCoverLetter, "cover_letter")
	if err := a.save(doc, out); err != nil {
		return model.GeneratedDocument{}, err
	}
	return model.GeneratedDocument{Path: out, Preview: body}, nil
}

// outputPath builds the artifact filename. With company and position both
// known the name is structured and date-stamped; otherwise a timestamped
// fallback keeps names unique.
func (a *Assembler) outputPath(dir, company, position, kind, fallbackKind string) string {
	now := a.now()
	var name string
	if company != "" && position != "" {
		name = filenameSanitizer.Replace(company) +
			"—" + filenameSanitizer.Replace(position) +
			"—" + kind +
			"—" + now.Format("2006-01-02")
	} else {
		name = fallbackKind + "_" + now.Format("20060102_150405")
	}
	return filepath.Join(dir, name+a.writer.Ext())
}

// save ensures the destination directory exists, then writes the document.
func (a *Assembler) save(doc model.Document, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &model.FileSystemError{Path: filepath.Dir(path), Err: err}
	}
	return doc.Save(path)
}
