package document

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/RichLyon/JobAppTracker/internal/model"
)

// fakeWriter records paragraphs instead of producing real files.
type fakeWriter struct {
	docs  []*fakeDocument
	bases map[string][]string // path -> existing paragraphs
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{bases: make(map[string][]string)}
}

func (w *fakeWriter) Ext() string { return ".docx" }

func (w *fakeWriter) NewDocument() model.Document {
	d := &fakeDocument{}
	w.docs = append(w.docs, d)
	return d
}

func (w *fakeWriter) OpenDocument(path string) (model.Document, error) {
	base, ok := w.bases[path]
	if !ok {
		return nil, &model.NotFoundError{Kind: "document", Path: path}
	}
	d := &fakeDocument{paragraphs: append([]string(nil), base...)}
	w.docs = append(w.docs, d)
	return d, nil
}

type fakeDocument struct {
	paragraphs []string
	savedTo    string
}

func (d *fakeDocument) AddParagraph(text string) { d.paragraphs = append(d.paragraphs, text) }
func (d *fakeDocument) AddHeading(text string)   { d.paragraphs = append(d.paragraphs, "# "+text) }
func (d *fakeDocument) Save(path string) error {
	d.savedTo = path
	return nil
}

func newTestAssembler(w *fakeWriter) *Assembler {
	a := NewAssembler(w, "resumes", "cover_letters")
	a.now = func() time.Time { return time.Date(2024, time.March, 5, 15, 4, 5, 0, time.UTC) }
	return a
}

func TestAssembleResumeAppendsWithoutMutatingBase(t *testing.T) {
	w := newFakeWriter()
	w.bases["base.docx"] = []string{"Jane Doe", "Experience: things"}
	a := newTestAssembler(w)

	got, err := a.AssembleResume("base.docx", "Acme", "Engineer", "- emphasize Go")
	if err != nil {
		t.Fatalf("AssembleResume: %v", err)
	}

	doc := w.docs[0]
	want := []string{"Jane Doe", "Experience: things", "# Tailoring Suggestions", "- emphasize Go"}
	if !reflect.DeepEqual(doc.paragraphs, want) {
		t.Errorf("paragraphs = %q, want %q", doc.paragraphs, want)
	}
	// The copy is saved elsewhere; the base entry is untouched.
	if len(w.bases["base.docx"]) != 2 {
		t.Error("base document was mutated")
	}
	if got.Preview != "- emphasize Go" {
		t.Errorf("Preview = %q", got.Preview)
	}
	if doc.savedTo != got.Path {
		t.Errorf("saved to %q, reported %q", doc.savedTo, got.Path)
	}
}

func TestAssembleResumeMissingBase(t *testing.T) {
	a := newTestAssembler(newFakeWriter())
	_, err := a.AssembleResume("nope.docx", "", "", "s")
	var nf *model.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestStructuredArtifactName(t *testing.T) {
	w := newFakeWriter()
	w.bases["base.docx"] = []string{"text"}
	a := newTestAssembler(w)

	got, err := a.AssembleResume("base.docx", "A/B", "X:Y", "s")
	if err != nil {
		t.Fatalf("AssembleResume: %v", err)
	}
	want := "A-B—X-Y—Resume—2024-03-05.docx"
	if filepath.Base(got.Path) != want {
		t.Errorf("filename = %q, want %q", filepath.Base(got.Path), want)
	}
	if filepath.Dir(got.Path) != "resumes" {
		t.Errorf("dir = %q, want resumes", filepath.Dir(got.Path))
	}
}

func TestFallbackArtifactName(t *testing.T) {
	w := newFakeWriter()
	a := newTestAssembler(w)

	got, err := a.AssembleCoverLetter(model.Applicant{}, "", "", "body")
	if err != nil {
		t.Fatalf("AssembleCoverLetter: %v", err)
	}
	if filepath.Base(got.Path) != "cover_letter_20240305_150405.docx" {
		t.Errorf("filename = %q", filepath.Base(got.Path))
	}
}

func TestSanitizeReplacesUnsafeCharacters(t *testing.T) {
	in := `a/b\c:d*e?f"g<h>i|j`
	want := "a-b-c-d-e-f-g-h-i-j"
	if got := filenameSanitizer.Replace(in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAssembleCoverLetterLayout(t *testing.T) {
	w := newFakeWriter()
	a := newTestAssembler(w)

	applicant := model.Applicant{
		Name:    "Jane Doe",
		Address: "1 Main St",
		Email:   "jane@example.com",
		// Phone deliberately empty: its line must be omitted, not blank.
	}
	body := "First paragraph.\n\nSecond paragraph.\n\n\n\nThird paragraph."

	_, err := a.AssembleCoverLetter(applicant, "Acme", "Engineer", body)
	if err != nil {
		t.Fatalf("AssembleCoverLetter: %v", err)
	}

	want := []string{
		"Jane Doe",
		"1 Main St",
		"jane@example.com",
		"March 5, 2024",
		"",
		"Hiring Manager",
		"Acme",
		"Company Address",
		"City, State ZIP",
		"",
		"Dear Hiring Manager,",
		"First paragraph.",
		"Second paragraph.",
		"Third paragraph.",
		"",
		"Sincerely,",
		"",
		"Jane Doe",
	}
	if !reflect.DeepEqual(w.docs[0].paragraphs, want) {
		t.Errorf("paragraphs:\ngot  %q\nwant %q", w.docs[0].paragraphs, want)
	}
}

func TestAssembleCoverLetterUnknownApplicant(t *testing.T) {
	w := newFakeWriter()
	a := newTestAssembler(w)

	_, err := a.AssembleCoverLetter(model.Applicant{}, "Acme", "Engineer", "body")
	if err != nil {
		t.Fatalf("AssembleCoverLetter: %v", err)
	}
	paragraphs := w.docs[0].paragraphs
	if paragraphs[len(paragraphs)-1] != "[Your Name]" {
		t.Errorf("signature = %q, want placeholder", paragraphs[len(paragraphs)-1])
	}
	for _, p := range paragraphs {
		if strings.HasPrefix(p, "jane") {
			t.Errorf("unexpected contact line %q", p)
		}
	}
}

func TestAssembleCoverLetterIsDeterministic(t *testing.T) {
	w := newFakeWriter()
	a := newTestAssembler(w)

	applicant := model.Applicant{Name: "Jane Doe", Email: "jane@example.com"}
	body := "One.\n\nTwo."

	if _, err := a.AssembleCoverLetter(applicant, "Acme", "Engineer", body); err != nil {
		t.Fatalf("first assemble: %v", err)
	}
	if _, err := a.AssembleCoverLetter(applicant, "Acme", "Engineer", body); err != nil {
		t.Fatalf("second assemble: %v", err)
	}

	if !reflect.DeepEqual(w.docs[0].paragraphs, w.docs[1].paragraphs) {
		t.Errorf("same inputs produced different content:\n%q\n%q", w.docs[0].paragraphs, w.docs[1].paragraphs)
	}
}
