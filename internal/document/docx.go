package document

import (
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/RichLyon/JobAppTracker/internal/model"
)

// Docx reads and writes .docx files. It implements model.TextExtractor
// and model.DocumentWriter.
type Docx struct{}

// NewDocx returns the .docx document capability.
func NewDocx() *Docx { return &Docx{} }

// Ext returns ".docx".
func (d *Docx) Ext() string { return ".docx" }

// ExtractText returns the document's non-blank paragraphs joined with
// newlines.
func (d *Docx) ExtractText(path string) (string, error) {
	doc, err := parseFile(path)
	if err != nil {
		return "", err
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		p, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := strings.TrimSpace(p.String()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}

// NewDocument returns an empty writable document.
func (d *Docx) NewDocument() model.Document {
	return &docxDocument{doc: docx.New().WithDefaultTheme()}
}

// OpenDocument loads an existing .docx so paragraphs can be appended.
// Saving under a new path leaves the original file untouched.
func (d *Docx) OpenDocument(path string) (model.Document, error) {
	doc, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	return &docxDocument{doc: doc}, nil
}

func parseFile(path string) (*docx.Docx, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &model.NotFoundError{Kind: "document", Path: path}
		}
		return nil, &model.ReadError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &model.ReadError{Path: path, Err: err}
	}
	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, &model.ReadError{Path: path, Err: err}
	}
	return doc, nil
}

type docxDocument struct {
	doc *docx.Docx
}

func (w *docxDocument) AddParagraph(text string) {
	p := w.doc.AddParagraph()
	if text != "" {
		p.AddText(text)
	}
}

func (w *docxDocument) AddHeading(text string) {
	// go-docx carries no named heading styles; bold oversized text stands
	// in for Heading 1.
	w.doc.AddParagraph().AddText(text).Size("32").Bold()
}

func (w *docxDocument) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &model.FileSystemError{Path: path, Err: err}
	}
	if _, err := w.doc.WriteTo(f); err != nil {
		f.Close()
		return &model.FileSystemError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &model.FileSystemError{Path: path, Err: err}
	}
	return nil
}
