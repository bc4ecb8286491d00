// Package confluence implements the DocumentStoreClient port against a
// Confluence-style v2 REST API: cursor pagination, bearer-token auth,
// and proactive rate limiting with 429 backoff.
package confluence
