package exnota

import (
	"github.com/longkey1/exnota/internal/result"
)

// Page validation kinds
const (
	KindInvalidID    result.Kind = "invalid-id"
	KindMissingTitle result.Kind = "missing-title"
	KindMissingURL   result.Kind = "missing-url"
)

// NewPageKinds is the kind set of NewPage
var NewPageKinds = result.NewKindSet(KindInvalidID, KindMissingTitle, KindMissingURL)

// Page is a Notion page highlights are saved to
type Page struct {
	ID    string `json:"id" msgpack:"id"`
	Title string `json:"title" msgpack:"title"`
	URL   string `json:"url" msgpack:"url"`
}

// NewPage validates and creates a page
func NewPage(id, title, url string) result.Result[Page] {
	if id == "" {
		return result.Fail[Page](KindInvalidID, "Missing id", nil, nil)
	}
	if title == "" {
		return result.Fail[Page](KindMissingTitle, "Missing title", nil, result.Metadata{"id": id})
	}
	if url == "" {
		return result.Fail[Page](KindMissingURL, "Missing url", nil, result.Metadata{"id": id})
	}
	return result.Ok(Page{ID: id, Title: title, URL: url})
}
