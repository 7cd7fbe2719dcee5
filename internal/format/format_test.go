package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/usecase"
)

var pages = []exnota.Page{
	{ID: "p1", Title: "Reading notes", URL: "https://www.notion.so/p1"},
	{ID: "p2", Title: "Highlights", URL: "https://www.notion.so/p2"},
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "text", "table"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, OutputFormat(name), f)
	}

	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}

func TestPagesTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable, &buf).Pages(pages))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "#  Title          ID", lines[0])
	assert.Equal(t, "-  -------------  --", lines[1])
	assert.Equal(t, "1  Reading notes  p1", lines[2])
	assert.Equal(t, "2  Highlights     p2", lines[3])
}

func TestPagesText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatText, &buf).Pages(pages[:1]))

	assert.Equal(t, "Reading notes\n  ID: p1\n  URL: https://www.notion.so/p1\n", buf.String())
}

func TestPagesJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON, &buf).Pages(nil))

	assert.JSONEq(t, `{"pages":[]}`, buf.String())
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("あ", 60)
	got := truncate(long)
	assert.Equal(t, maxTitleWidth, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, "short", truncate("short"))
}

func TestConnect(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatText, &buf)

	require.NoError(t, f.Connect(usecase.ConnectResponse{Status: usecase.StatusPageSet, Pages: pages[:1]}))
	assert.Contains(t, buf.String(), "Connected. Highlights will be saved to:")
	assert.Contains(t, buf.String(), "Reading notes")

	buf.Reset()
	require.NoError(t, f.Connect(usecase.ConnectResponse{Status: usecase.StatusMultiplePages, Pages: pages}))
	assert.Contains(t, buf.String(), "choose one")
	assert.Contains(t, buf.String(), "Highlights")
}

func TestVerify(t *testing.T) {
	tests := []struct {
		resp usecase.VerifyPageResponse
		want string
	}{
		{resp: usecase.VerifyPageResponse{Status: usecase.VerifySuccess, Page: &pages[0]}, want: "reachable"},
		{resp: usecase.VerifyPageResponse{Status: usecase.VerifyNoAuth}, want: "Not connected"},
		{resp: usecase.VerifyPageResponse{Status: usecase.VerifyNoPage}, want: "no destination page"},
		{resp: usecase.VerifyPageResponse{Status: usecase.VerifyNoPageAccess}, want: "no longer shared"},
		{resp: usecase.VerifyPageResponse{Status: usecase.VerifyInvalidAuth}, want: "no longer valid"},
	}
	for _, tt := range tests {
		t.Run(string(tt.resp.Status), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewFormatter(FormatText, &buf).Verify(tt.resp))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestVerifyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON, &buf).Verify(usecase.VerifyPageResponse{Status: usecase.VerifyNoPage}))

	assert.JSONEq(t, `{"status":"no-page"}`, buf.String())
}

func TestFailure(t *testing.T) {
	err := &result.Error{
		Kind:     "storage-get",
		Message:  "Failed to load options",
		Cause:    errors.New("disk full"),
		Metadata: result.Metadata{"key": "options"},
	}

	var text bytes.Buffer
	require.NoError(t, NewFormatter(FormatText, &text).Failure(err))
	assert.Equal(t, "Error: Failed to load options (storage-get)\n  Cause: disk full\n", text.String())

	var js bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON, &js).Failure(err))
	assert.JSONEq(t, `{
		"errorType": "storage-get",
		"message": "Failed to load options",
		"metadata": {"key": "options"},
		"error": {"name": "*errors.errorString", "message": "disk full"}
	}`, js.String())
}
