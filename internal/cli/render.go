package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/mannit-co/albayan/internal/cli/pagination"
	"github.com/mannit-co/albayan/internal/pager"
	"github.com/mannit-co/albayan/internal/tui"
	"github.com/mannit-co/albayan/internal/tui/controls"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// listOutput is the JSON/YAML document for one page of a collection.
type listOutput[T any] struct {
	Items      []T                       `json:"items"      yaml:"items"`
	Pagination pagination.PaginationMeta `json:"pagination" yaml:"pagination"`
}

// renderList writes one page in the requested format.
func renderList[T listItem](
	w io.Writer,
	coll collection[T],
	output string,
	mode tui.OutputMode,
	state pager.State[T],
	meta pagination.PaginationMeta,
) error {
	switch output {
	case OutputJSON:
		return renderJSON(w, listOutput[T]{Items: pageOf(state), Pagination: meta})
	case OutputYAML:
		return renderYAML(w, listOutput[T]{Items: pageOf(state), Pagination: meta})
	case OutputNDJSON:
		return renderNDJSON(w, state.PaginatedData)
	default:
		return renderTable(w, coll.screen(), mode, state, meta, coll.name)
	}
}

func renderJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func renderYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2) //nolint:mnd // conventional YAML indent
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return encoder.Close()
}

// renderNDJSON writes one item per line with no pagination metadata.
func renderNDJSON[T any](w io.Writer, items []T) error {
	encoder := json.NewEncoder(w)
	for _, item := range items {
		if err := encoder.Encode(item); err != nil {
			return fmt.Errorf("encoding NDJSON: %w", err)
		}
	}
	return nil
}

// renderTable writes the page as aligned columns followed by a page footer.
// Styled mode draws the page controls; plain mode prints "Page x of y".
func renderTable[T tui.Item](
	w io.Writer,
	screen tui.Screen[T],
	mode tui.OutputMode,
	state pager.State[T],
	meta pagination.PaginationMeta,
	noun string,
) error {
	if state.TotalItems == 0 {
		_, err := fmt.Fprintf(w, "No %s found.\n", noun)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	titles := make([]string, 0, len(screen.Columns))
	for _, c := range screen.Columns {
		titles = append(titles, strings.ToUpper(c.Title))
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))
	for _, item := range state.PaginatedData {
		fmt.Fprintln(tw, strings.Join(screen.Row(item), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	summary := fmt.Sprintf("Showing %d-%d of %d %s", meta.RangeStart, meta.RangeEnd, meta.TotalItems, noun)
	if meta.Clamped() {
		summary += fmt.Sprintf(" (page %d does not exist)", meta.RequestedPage)
	}

	if mode == tui.OutputModeStyled {
		bar := controls.RenderControls(controls.StateOf(state), tui.TerminalWidth())
		_, err := fmt.Fprintf(w, "\n%s\n%s\n", tui.SubtleStyle.Render(summary), bar)
		return err
	}

	footer := summary
	if state.TotalPages > 1 {
		footer = controls.Label(controls.StateOf(state)) + " · " + summary
	}
	_, err := fmt.Fprintf(w, "\n%s\n", footer)
	return err
}

// isBrokenPipe checks if an error is a broken pipe error (SIGPIPE).
// This occurs when output is piped to commands like `head` that close the pipe early.
func isBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE
	}
	return strings.Contains(err.Error(), "broken pipe")
}
