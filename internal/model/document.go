package model

// TextExtractor pulls the plain-text content out of a stored document.
type TextExtractor interface {
	// ExtractText returns the document's paragraphs joined with newlines,
	// blank paragraphs omitted. Returns a *ReadError on a corrupt or
	// unsupported file.
	ExtractText(path string) (string, error)
}

// Document is a writable document being assembled paragraph by paragraph.
type Document interface {
	AddParagraph(text string)
	// AddHeading adds an emphasized section heading paragraph.
	AddHeading(text string)
	// Save writes the document to path. Returns a *FileSystemError on
	// failure.
	Save(path string) error
}

// DocumentWriter creates writable documents.
type DocumentWriter interface {
	NewDocument() Document
	// OpenDocument loads an existing document so paragraphs can be
	// appended without mutating the original file. Returns a *ReadError
	// if the source cannot be parsed.
	OpenDocument(path string) (Document, error)
	// Ext is the filename extension for documents this writer produces,
	// including the leading dot.
	Ext() string
}

// GeneratedDocument pairs a persisted artifact with a preview of the
// generated text that went into it.
type GeneratedDocument struct {
	Path    string
	Preview string
}
