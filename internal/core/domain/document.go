package domain

import "time"

// Container is a named partition of the remote document store (a "space").
// The store owns containers entirely; this system only reads them and
// caches the key -> id mapping.
type Container struct {
	// ID is the store-internal numeric identifier, required for most
	// write and list operations.
	ID string

	// Key is the stable human-readable identifier.
	Key string

	// Name is the display label.
	Name string
}

// Document is a node in a container's hierarchy (a "page").
// Documents are created by the bulk engine or read by the crawler;
// they are never mutated or deleted by this system.
type Document struct {
	// ID is the store-assigned identifier.
	ID string

	// Title is the document title. Uniqueness is only enforced by the
	// store within sibling scope.
	Title string

	// ContainerKey and ContainerName are denormalised from the owning
	// container for downstream display.
	ContainerKey  string
	ContainerName string

	// ParentID links to a parent document, if any.
	ParentID *string

	// URL is a resolvable web link to the document.
	URL string

	// LastModified is the store's last-modification timestamp.
	LastModified time.Time
}

// CrawlResult is the outcome of an exhaustive catalog crawl.
// A failed crawl still carries whatever was collected before the
// failure, with Err set instead of an error return.
type CrawlResult struct {
	// Documents is the flat catalog, denormalised with container metadata.
	Documents []Document

	// Containers lists every container that was discovered.
	Containers []Container

	// TotalCount is len(Documents).
	TotalCount int

	// LoadedContainers counts containers whose documents were listed
	// without error.
	LoadedContainers int

	// Truncated reports that the global document cap stopped the crawl
	// early, or that at least one container could not be listed.
	Truncated bool

	// Err carries the failure message when the crawl itself failed
	// (e.g. containers could not be listed at all). Partial results
	// collected before the failure are still populated.
	Err string
}

// URLResolution is the outcome of resolving a pasted store URL.
// If the URL names a single document, TargetDocument is set and
// DirectMode is true. Otherwise Documents holds a listing of the
// named container.
type URLResolution struct {
	TargetDocument *Document
	Documents      []Document
	Containers     []Container
	DirectMode     bool
}
