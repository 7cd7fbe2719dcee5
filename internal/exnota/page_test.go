package exnota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longkey1/exnota/internal/result"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		title string
		url   string
		kind  result.Kind
	}{
		{name: "valid", id: "the id", title: "the title", url: "the url"},
		{name: "missing id", title: "the title", url: "the url", kind: KindInvalidID},
		{name: "missing title", id: "the id", url: "the url", kind: KindMissingTitle},
		{name: "missing url", id: "the id", title: "the title", kind: KindMissingURL},
		{name: "all missing", kind: KindInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewPage(tt.id, tt.title, tt.url)
			if tt.kind == "" {
				require.True(t, r.IsOk())
				assert.Equal(t, Page{ID: tt.id, Title: tt.title, URL: tt.url}, r.Value())
				return
			}
			require.False(t, r.IsOk())
			assert.Equal(t, tt.kind, r.Kind())
			assert.True(t, NewPageKinds.Contains(r.Kind()))
		})
	}
}
