package mcp

import (
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog reads containers and documents from the remote store.
	Catalog driving.CatalogService

	// Template captures and manages stored templates.
	Template driving.TemplateService

	// Generation runs bulk document creation.
	Generation driving.GenerationService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Template == nil {
		return ErrMissingTemplateService
	}
	if p.Generation == nil {
		return ErrMissingGenerationService
	}
	return nil
}
