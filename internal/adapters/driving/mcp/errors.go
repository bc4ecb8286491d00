// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Stampede. It is the narrow RPC surface the UI invokes: the UI renders
// whatever structured result comes back.
package mcp

import "errors"

// Port validation errors.
var (
	// ErrMissingCatalogService is returned when the catalog service is not provided.
	ErrMissingCatalogService = errors.New("mcp: catalog service is required")

	// ErrMissingTemplateService is returned when the template service is not provided.
	ErrMissingTemplateService = errors.New("mcp: template service is required")

	// ErrMissingGenerationService is returned when the generation service is not provided.
	ErrMissingGenerationService = errors.New("mcp: generation service is required")
)
