package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

// ContainerOutput represents one container in tool results.
type ContainerOutput struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	ID   string `json:"id"`
}

// DocumentOutput represents one document in tool results.
type DocumentOutput struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ContainerKey  string `json:"container_key,omitempty"`
	ContainerName string `json:"container_name,omitempty"`
	ParentID      string `json:"parent_id,omitempty"`
	URL           string `json:"url,omitempty"`
	LastModified  string `json:"last_modified,omitempty"`
}

// ListContainersOutput is the output schema for the list_containers tool.
type ListContainersOutput struct {
	Containers []ContainerOutput `json:"containers"`
}

// CrawlInput is the input schema for the crawl_documents tool.
type CrawlInput struct {
	MaxDocuments int `json:"max_documents,omitempty" jsonschema:"global cap on crawled documents (default 5000)"`
}

// CrawlOutput is the output schema for the crawl_documents tool.
type CrawlOutput struct {
	Documents        []DocumentOutput  `json:"documents"`
	Containers       []ContainerOutput `json:"containers"`
	TotalCount       int               `json:"total_count"`
	LoadedContainers int               `json:"loaded_containers"`
	Truncated        bool              `json:"truncated"`
	Error            string            `json:"error,omitempty"`
}

// ResolveURLInput is the input schema for the resolve_url tool.
type ResolveURLInput struct {
	URL string `json:"url" jsonschema:"a store URL naming a document or a container"`
}

// ResolveURLOutput is the output schema for the resolve_url tool.
type ResolveURLOutput struct {
	TargetDocument *DocumentOutput   `json:"target_document,omitempty"`
	Documents      []DocumentOutput  `json:"documents,omitempty"`
	Containers     []ContainerOutput `json:"containers"`
	DirectMode     bool              `json:"direct_mode"`
}

// ListTopDocumentsInput is the input schema for the list_top_documents tool.
type ListTopDocumentsInput struct {
	ContainerKey string `json:"container_key" jsonschema:"the container key to list"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum number of documents (default 30)"`
}

// ListTopDocumentsOutput is the output schema for the list_top_documents tool.
type ListTopDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
}

// CaptureTemplateInput is the input schema for the capture_template tool.
type CaptureTemplateInput struct {
	DocumentID string `json:"document_id,omitempty" jsonschema:"direct document id to capture"`
	URL        string `json:"url,omitempty" jsonschema:"store URL naming the document to capture"`
	Name       string `json:"name,omitempty" jsonschema:"display name, defaults to the source title"`
}

// CaptureTemplateOutput is the output schema for the capture_template tool.
type CaptureTemplateOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SourceTitle string `json:"source_title"`
	CreatedAt   string `json:"created_at"`
}

// TitleSpecInput carries mode-specific title generation parameters.
type TitleSpecInput struct {
	Mode         string `json:"mode" jsonschema:"one of single, numbered, weekly, monthly, quarterly"`
	BaseTitle    string `json:"base_title" jsonschema:"base title for generated names"`
	Count        int    `json:"count,omitempty" jsonschema:"number of titles to generate"`
	StartMonth   string `json:"start_month,omitempty" jsonschema:"full month name for weekly/monthly modes"`
	StartDay     int    `json:"start_day,omitempty" jsonschema:"day of month for weekly mode"`
	StartYear    int    `json:"start_year,omitempty" jsonschema:"year for weekly/monthly/quarterly modes"`
	StartQuarter string `json:"start_quarter,omitempty" jsonschema:"Q1..Q4 for quarterly mode"`
}

// GenerateInput is the input schema for the generate_pages tool.
type GenerateInput struct {
	TemplateID       string          `json:"template_id" jsonschema:"id of a captured template"`
	ContainerKey     string          `json:"container_key" jsonschema:"destination container key"`
	OrganizationMode string          `json:"organization_mode" jsonschema:"one of top-level, attach-existing, new-parent"`
	ParentDocumentID string          `json:"parent_document_id,omitempty" jsonschema:"required for attach-existing"`
	NewParentTitle   string          `json:"new_parent_title,omitempty" jsonschema:"required for new-parent"`
	Titles           []string        `json:"titles,omitempty" jsonschema:"explicit ordered title list"`
	TitleSpec        *TitleSpecInput `json:"title_spec,omitempty" jsonschema:"generated title sequence when titles is empty"`
}

// CreatedPageOutput represents one successful creation.
type CreatedPageOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Index int    `json:"index"`
}

// PageErrorOutput represents one failed creation.
type PageErrorOutput struct {
	Title string `json:"title"`
	Error string `json:"error"`
	Index int    `json:"index"`
}

// GenerateOutput is the output schema for the generate_pages tool.
type GenerateOutput struct {
	TotalRequested int                 `json:"total_requested"`
	CreatedCount   int                 `json:"created_count"`
	Pages          []CreatedPageOutput `json:"pages"`
	Errors         []PageErrorOutput   `json:"errors"`
	ParentID       string              `json:"parent_id,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_containers",
		Description: "List all containers in the document store",
	}, s.handleListContainers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "crawl_documents",
		Description: "Enumerate documents across all containers up to a global cap",
	}, s.handleCrawl)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_url",
		Description: "Resolve a store URL to a document or a container listing",
	}, s.handleResolveURL)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_top_documents",
		Description: "List documents in one container, sorted by title",
	}, s.handleListTopDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "capture_template",
		Description: "Capture a document's content as a reusable template",
	}, s.handleCaptureTemplate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_pages",
		Description: "Create N documents from a captured template",
	}, s.handleGenerate)
}

func (s *Server) handleListContainers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListContainersOutput, error) {
	containers, err := s.ports.Catalog.ListContainers(ctx)
	if err != nil {
		return nil, ListContainersOutput{}, err
	}
	return nil, ListContainersOutput{Containers: toContainerOutputs(containers)}, nil
}

func (s *Server) handleCrawl(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CrawlInput,
) (*mcp.CallToolResult, CrawlOutput, error) {
	maxDocs := input.MaxDocuments
	if maxDocs == 0 {
		maxDocs = domain.DefaultMaxDocuments
	}

	result := s.ports.Catalog.CrawlAll(ctx, maxDocs)

	return nil, CrawlOutput{
		Documents:        toDocumentOutputs(result.Documents),
		Containers:       toContainerOutputs(result.Containers),
		TotalCount:       result.TotalCount,
		LoadedContainers: result.LoadedContainers,
		Truncated:        result.Truncated,
		Error:            result.Err,
	}, nil
}

func (s *Server) handleResolveURL(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveURLInput,
) (*mcp.CallToolResult, ResolveURLOutput, error) {
	res, err := s.ports.Catalog.ResolveFromURL(ctx, input.URL)
	if err != nil {
		return nil, ResolveURLOutput{}, err
	}

	out := ResolveURLOutput{
		Documents:  toDocumentOutputs(res.Documents),
		Containers: toContainerOutputs(res.Containers),
		DirectMode: res.DirectMode,
	}
	if res.TargetDocument != nil {
		doc := toDocumentOutput(*res.TargetDocument)
		out.TargetDocument = &doc
	}
	return nil, out, nil
}

func (s *Server) handleListTopDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListTopDocumentsInput,
) (*mcp.CallToolResult, ListTopDocumentsOutput, error) {
	docs, err := s.ports.Catalog.ListTopDocuments(ctx, input.ContainerKey, input.Limit)
	if err != nil {
		return nil, ListTopDocumentsOutput{}, err
	}
	return nil, ListTopDocumentsOutput{Documents: toDocumentOutputs(docs)}, nil
}

func (s *Server) handleCaptureTemplate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CaptureTemplateInput,
) (*mcp.CallToolResult, CaptureTemplateOutput, error) {
	info, err := s.ports.Template.Capture(ctx, domain.TemplateRef{
		DocumentID: input.DocumentID,
		URL:        input.URL,
	}, input.Name)
	if err != nil {
		return nil, CaptureTemplateOutput{}, err
	}

	return nil, CaptureTemplateOutput{
		ID:          info.ID,
		Name:        info.Name,
		SourceTitle: info.SourceTitle,
		CreatedAt:   info.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	req := domain.GenerationRequest{
		TemplateID:       input.TemplateID,
		ContainerKey:     input.ContainerKey,
		Mode:             domain.OrganizationMode(input.OrganizationMode),
		ParentDocumentID: input.ParentDocumentID,
		NewParentTitle:   input.NewParentTitle,
		Titles:           input.Titles,
	}
	if input.TitleSpec != nil {
		req.TitleSpec = &domain.TitleSpec{
			Mode:         domain.TitleMode(input.TitleSpec.Mode),
			BaseTitle:    input.TitleSpec.BaseTitle,
			Count:        input.TitleSpec.Count,
			StartMonth:   input.TitleSpec.StartMonth,
			StartDay:     input.TitleSpec.StartDay,
			StartYear:    input.TitleSpec.StartYear,
			StartQuarter: input.TitleSpec.StartQuarter,
		}
	}

	report, err := s.ports.Generation.Run(ctx, req)
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	out := GenerateOutput{
		TotalRequested: report.TotalRequested,
		CreatedCount:   report.CreatedCount,
		Pages:          make([]CreatedPageOutput, 0, len(report.Pages)),
		Errors:         make([]PageErrorOutput, 0, len(report.Errors)),
		ParentID:       report.ParentID,
	}
	for _, p := range report.Pages {
		out.Pages = append(out.Pages, CreatedPageOutput{ID: p.ID, Title: p.Title, URL: p.URL, Index: p.Index})
	}
	for _, e := range report.Errors {
		out.Errors = append(out.Errors, PageErrorOutput{Title: e.Title, Error: e.Err, Index: e.Index})
	}
	return nil, out, nil
}

func toContainerOutputs(containers []domain.Container) []ContainerOutput {
	out := make([]ContainerOutput, 0, len(containers))
	for _, c := range containers {
		out = append(out, ContainerOutput{Key: c.Key, Name: c.Name, ID: c.ID})
	}
	return out
}

func toDocumentOutput(doc domain.Document) DocumentOutput {
	out := DocumentOutput{
		ID:            doc.ID,
		Title:         doc.Title,
		ContainerKey:  doc.ContainerKey,
		ContainerName: doc.ContainerName,
		URL:           doc.URL,
	}
	if doc.ParentID != nil {
		out.ParentID = *doc.ParentID
	}
	if !doc.LastModified.IsZero() {
		out.LastModified = doc.LastModified.Format(time.RFC3339)
	}
	return out
}

func toDocumentOutputs(docs []domain.Document) []DocumentOutput {
	out := make([]DocumentOutput, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentOutput(doc))
	}
	return out
}
