package exnota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsConfig(t *testing.T) {
	p1 := Page{ID: "p1", Title: "Notes", URL: "https://notion.so/p1"}
	p2 := Page{ID: "p2", Title: "Ideas", URL: "https://notion.so/p2"}

	cfg := NewOptionsConfig(p1)
	require.NotNil(t, cfg.Page())
	assert.Equal(t, p1, *cfg.Page())
	assert.Empty(t, cfg.Token())

	updated := cfg.WithPage(p2).WithToken("secret_abc")
	assert.Equal(t, p2, *updated.Page())
	assert.Equal(t, "secret_abc", updated.Token())
	assert.Equal(t, p1, *cfg.Page(), "original is unchanged")

	cfg.Page().Title = "mutated"
	assert.Equal(t, "Notes", cfg.Page().Title)
}

func TestRestoreOptionsConfig(t *testing.T) {
	empty := RestoreOptionsConfig(nil, "tok")
	assert.Nil(t, empty.Page())
	assert.Equal(t, "tok", empty.Token())

	p := &Page{ID: "p1", Title: "Notes", URL: "u"}
	restored := RestoreOptionsConfig(p, "")
	p.ID = "changed"
	assert.Equal(t, "p1", restored.Page().ID)
}
