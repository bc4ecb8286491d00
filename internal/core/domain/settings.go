package domain

import "time"

// Default tunables for crawling and generation.
const (
	// DefaultMaxDocuments caps the exhaustive crawl.
	DefaultMaxDocuments = 5000

	// DefaultBatchSize is the number of creates per sequential batch.
	DefaultBatchSize = 5

	// DefaultPageSize is the page size for remote list calls.
	DefaultPageSize = 50

	// DefaultCreateDelay is the pause between successive creates within
	// a run. A tunable, not a correctness requirement.
	DefaultCreateDelay = 150 * time.Millisecond

	// DefaultTopDocumentsLimit bounds single-container listings.
	DefaultTopDocumentsLimit = 30
)

// Settings is the explicit configuration passed to the crawler and the
// bulk engine at construction time. There are no ambient globals.
type Settings struct {
	// MaxDocuments is the global crawl cap.
	MaxDocuments int

	// BatchSize bounds each sequential create batch.
	BatchSize int

	// PageSize is the remote list page size.
	PageSize int

	// CreateDelay is the pause between successive creates.
	CreateDelay time.Duration
}

// DefaultSettings returns settings with all defaults applied.
func DefaultSettings() Settings {
	return Settings{
		MaxDocuments: DefaultMaxDocuments,
		BatchSize:    DefaultBatchSize,
		PageSize:     DefaultPageSize,
		CreateDelay:  DefaultCreateDelay,
	}
}

// Normalised returns a copy with zero or negative fields replaced by
// their defaults.
func (s Settings) Normalised() Settings {
	out := s
	if out.MaxDocuments <= 0 {
		out.MaxDocuments = DefaultMaxDocuments
	}
	if out.BatchSize <= 0 {
		out.BatchSize = DefaultBatchSize
	}
	if out.PageSize <= 0 {
		out.PageSize = DefaultPageSize
	}
	if out.CreateDelay < 0 {
		out.CreateDelay = DefaultCreateDelay
	}
	return out
}
