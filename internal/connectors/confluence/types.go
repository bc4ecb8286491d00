package confluence

import (
	"net/url"
	"strconv"
	"time"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

// Wire types for the store's v2 REST API. All list endpoints share the
// results + _links.next envelope; the next link carries the cursor as a
// query parameter.

type pageLinks struct {
	Next string `json:"next"`
}

type spaceListResponse struct {
	Results []space   `json:"results"`
	Links   pageLinks `json:"_links"`
}

type space struct {
	ID   int64  `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

type pageListResponse struct {
	Results []page    `json:"results"`
	Links   pageLinks `json:"_links"`
}

type page struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	ParentID string    `json:"parentId"`
	SpaceID  int64     `json:"spaceId"`
	Version  *version  `json:"version"`
	Links    *webLinks `json:"_links"`
	Body     *pageBody `json:"body"`
}

type version struct {
	CreatedAt time.Time `json:"createdAt"`
}

type webLinks struct {
	WebUI string `json:"webui"`
}

type pageBody struct {
	Storage *bodyValue `json:"storage"`
}

type bodyValue struct {
	Representation string `json:"representation"`
	Value          string `json:"value"`
}

type createPageRequest struct {
	SpaceID  string          `json:"spaceId"`
	Status   string          `json:"status"`
	Title    string          `json:"title"`
	ParentID string          `json:"parentId,omitempty"`
	Body     createBodyValue `json:"body"`
}

type createBodyValue struct {
	Representation string `json:"representation"`
	Value          string `json:"value"`
}

type apiErrorResponse struct {
	Errors []struct {
		Title string `json:"title"`
	} `json:"errors"`
	Message string `json:"message"`
}

// toDocument maps a wire page onto the domain type. The web UI link is
// relative; the caller prefixes the base URL.
func (p *page) toDocument(baseURL string) domain.Document {
	doc := domain.Document{
		ID:    p.ID,
		Title: p.Title,
	}
	if p.ParentID != "" {
		parent := p.ParentID
		doc.ParentID = &parent
	}
	if p.Version != nil {
		doc.LastModified = p.Version.CreatedAt
	}
	if p.Links != nil && p.Links.WebUI != "" {
		doc.URL = baseURL + p.Links.WebUI
	}
	return doc
}

func (s *space) toContainer() domain.Container {
	return domain.Container{
		ID:   strconv.FormatInt(s.ID, 10),
		Key:  s.Key,
		Name: s.Name,
	}
}

// cursorFromNextLink extracts the cursor query parameter from a
// _links.next value. An absent or unparseable link means the listing is
// exhausted.
func cursorFromNextLink(next string) string {
	if next == "" {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil {
		return ""
	}
	return u.Query().Get("cursor")
}
