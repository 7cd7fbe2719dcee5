// Package format renders command results for the terminal
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/usecase"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
)

const maxTitleWidth = 50

// ParseFormat validates a format name given on the command line
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatJSON, FormatText, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format: %s (expected json, text or table)", s)
	}
}

// Formatter handles output formatting
type Formatter struct {
	format OutputFormat
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(format OutputFormat, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// Pages formats a list of pages
func (f *Formatter) Pages(pages []exnota.Page) error {
	switch f.format {
	case FormatJSON:
		if pages == nil {
			pages = []exnota.Page{}
		}
		return f.json(map[string]any{"pages": pages})
	case FormatText:
		for i, page := range pages {
			if i > 0 {
				fmt.Fprintln(f.writer, "---")
			}
			f.pageText(page, "  ")
		}
		return nil
	default:
		rows := make([][]string, 0, len(pages))
		for i, page := range pages {
			rows = append(rows, []string{fmt.Sprint(i + 1), truncate(page.Title), page.ID})
		}
		return f.table([]string{"#", "Title", "ID"}, rows)
	}
}

// Connect formats the outcome of a connect
func (f *Formatter) Connect(resp usecase.ConnectResponse) error {
	if f.format == FormatJSON {
		return f.json(resp)
	}

	switch resp.Status {
	case usecase.StatusPageSet:
		fmt.Fprintln(f.writer, "Connected. Highlights will be saved to:")
		if len(resp.Pages) > 0 {
			f.pageText(resp.Pages[0], "  ")
		}
		return nil
	default:
		fmt.Fprintln(f.writer, "Connected. More than one page was shared, choose one:")
		fmt.Fprintln(f.writer)
		return f.Pages(resp.Pages)
	}
}

// Verify formats the outcome of a page verification
func (f *Formatter) Verify(resp usecase.VerifyPageResponse) error {
	if f.format == FormatJSON {
		return f.json(resp)
	}

	switch resp.Status {
	case usecase.VerifySuccess:
		fmt.Fprintln(f.writer, "Destination page is reachable.")
		if resp.Page != nil {
			f.pageText(*resp.Page, "  ")
		}
	case usecase.VerifyNoAuth:
		fmt.Fprintln(f.writer, "Not connected. Run `exnota connect` or `exnota token set`.")
	case usecase.VerifyNoPage:
		fmt.Fprintln(f.writer, "Connected, but no destination page is set. Run `exnota set-page`.")
	case usecase.VerifyNoPageAccess:
		fmt.Fprintln(f.writer, "The destination page is no longer shared with the integration.")
	case usecase.VerifyInvalidAuth:
		fmt.Fprintln(f.writer, "The Notion authorization is no longer valid. Run `exnota connect` again.")
	default:
		fmt.Fprintf(f.writer, "Unknown status: %s\n", resp.Status)
	}
	return nil
}

// Failure formats a failed operation
func (f *Formatter) Failure(err *result.Error) error {
	if f.format == FormatJSON {
		out := map[string]any{
			"errorType": err.Kind,
			"message":   err.Message,
		}
		if len(err.Metadata) > 0 {
			out["metadata"] = err.Metadata
		}
		if err.Cause != nil {
			out["error"] = result.SerializeError(err.Cause)
		}
		return f.json(out)
	}

	fmt.Fprintf(f.writer, "Error: %s (%s)\n", err.Message, err.Kind)
	if err.Cause != nil {
		fmt.Fprintf(f.writer, "  Cause: %v\n", err.Cause)
	}
	return nil
}

func (f *Formatter) pageText(page exnota.Page, indent string) {
	fmt.Fprintf(f.writer, "%s\n", page.Title)
	fmt.Fprintf(f.writer, "%sID: %s\n", indent, page.ID)
	fmt.Fprintf(f.writer, "%sURL: %s\n", indent, page.URL)
}

// json outputs as indented JSON
func (f *Formatter) json(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// table prints a simple table
func (f *Formatter) table(headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	f.row(headers, widths)
	separators := make([]string, len(widths))
	for i, w := range widths {
		separators[i] = strings.Repeat("-", w)
	}
	f.row(separators, widths)
	for _, row := range rows {
		f.row(row, widths)
	}
	return nil
}

func (f *Formatter) row(cells []string, widths []int) {
	var sb strings.Builder
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(cell)
		if i < len(cells)-1 {
			sb.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
	}
	fmt.Fprintln(f.writer, sb.String())
}

// truncate shortens long titles for table cells
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxTitleWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxTitleWidth-3]) + "..."
}
