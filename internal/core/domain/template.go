package domain

import "time"

// Template is an immutable capture of a source document's content at the
// time of capture. It is created once, read many times by the bulk engine,
// and persists until explicitly removed.
type Template struct {
	// ID is an opaque unique identifier generated at capture time.
	ID string

	// Name is the display label, defaulting to the source document's title.
	Name string

	// SourceDocumentID, SourceContainerID and SourceTitle identify where
	// the content was captured from.
	SourceDocumentID  string
	SourceContainerID string
	SourceTitle       string

	// Content is the opaque serialised body in the store's native format.
	// It is passed through to created documents unmodified.
	Content []byte

	// CreatedAt is the capture timestamp.
	CreatedAt time.Time
}

// TemplateInfo is the non-bulky subset of a template returned to callers.
// Content is never exposed through the driving ports; only the bulk
// engine reads it.
type TemplateInfo struct {
	ID          string
	Name        string
	SourceTitle string
	CreatedAt   time.Time
}

// Info returns the caller-facing view of the template.
func (t *Template) Info() TemplateInfo {
	return TemplateInfo{
		ID:          t.ID,
		Name:        t.Name,
		SourceTitle: t.SourceTitle,
		CreatedAt:   t.CreatedAt,
	}
}

// TemplateRef identifies the document to capture, either directly by id
// or by a pasted store URL.
type TemplateRef struct {
	DocumentID string
	URL        string
}
