package api

import (
	"fmt"
	"strings"
	"time"
)

// Error codes returned by the Notion API in APIError.Code
const (
	CodeUnauthorized        = "unauthorized"
	CodeRestrictedResource  = "restricted_resource"
	CodeObjectNotFound      = "object_not_found"
	CodeRateLimited         = "rate_limited"
	CodeInvalidJSON         = "invalid_json"
	CodeInvalidRequestURL   = "invalid_request_url"
	CodeInvalidRequest      = "invalid_request"
	CodeValidationError     = "validation_error"
	CodeMissingVersion      = "missing_version"
	CodeConflictError       = "conflict_error"
	CodeInternalServerError = "internal_server_error"
	CodeServiceUnavailable  = "service_unavailable"
)

// Parent types
const (
	ParentWorkspace = "workspace"
	ParentPage      = "page_id"
	ParentDatabase  = "database_id"
)

// SearchResponse represents the response from the search API
type SearchResponse struct {
	Object     string `json:"object"`
	Results    []Page `json:"results"`
	NextCursor string `json:"next_cursor"`
	HasMore    bool   `json:"has_more"`
}

// Page represents a Notion page
type Page struct {
	Object         string              `json:"object"`
	ID             string              `json:"id"`
	CreatedTime    time.Time           `json:"created_time"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Parent         *Parent             `json:"parent,omitempty"`
	Archived       bool                `json:"archived"`
	InTrash        bool                `json:"in_trash"`
	Properties     map[string]Property `json:"properties"`
	URL            string              `json:"url"`
}

// Title joins the plain text of the page's title property. ok is false when
// the page has no title property or the title is empty.
func (p *Page) Title() (title string, ok bool) {
	for _, prop := range p.Properties {
		if prop.Type != "title" {
			continue
		}
		title = prop.PlainText()
		return title, title != ""
	}
	return "", false
}

// IsTopLevel reports whether the page sits directly in the workspace
func (p *Page) IsTopLevel() bool {
	return p.Parent != nil && p.Parent.Type == ParentWorkspace
}

// Parent represents the parent of a page
type Parent struct {
	Type       string `json:"type"`
	DatabaseID string `json:"database_id,omitempty"`
	PageID     string `json:"page_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

// Property represents a page property. Only text-valued properties are decoded.
type Property struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
}

// PlainText joins the plain text of a title or rich_text property
func (p Property) PlainText() string {
	texts := p.Title
	if p.Type == "rich_text" {
		texts = p.RichText
	}
	var sb strings.Builder
	for _, t := range texts {
		sb.WriteString(t.PlainText)
	}
	return sb.String()
}

// RichText represents rich text content
type RichText struct {
	Type      string  `json:"type"`
	PlainText string  `json:"plain_text"`
	Href      *string `json:"href,omitempty"`
}

// User represents a Notion user
type User struct {
	Object    string  `json:"object"`
	ID        string  `json:"id"`
	Name      string  `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Type      string  `json:"type,omitempty"`
	Person    *Person `json:"person,omitempty"`
	Bot       *Bot    `json:"bot,omitempty"`
}

// Person represents a person user
type Person struct {
	Email string `json:"email"`
}

// Bot represents a bot user
type Bot struct {
	Owner         BotOwner `json:"owner"`
	WorkspaceName string   `json:"workspace_name"`
}

// BotOwner represents the owner of a bot
type BotOwner struct {
	Type      string `json:"type"`
	Workspace bool   `json:"workspace"`
}

// APIError represents an error from the Notion API
type APIError struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API error (status %d, code %s): %s", e.Status, e.Code, e.Message)
}

// SearchOptions contains options for Search
type SearchOptions struct {
	Query       string
	PageSize    int
	StartCursor string
}

type searchRequest struct {
	Query       string        `json:"query,omitempty"`
	Filter      *searchFilter `json:"filter,omitempty"`
	StartCursor string        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

type searchFilter struct {
	Value    string `json:"value"`
	Property string `json:"property"`
}
