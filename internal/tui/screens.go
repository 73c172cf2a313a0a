package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mannit-co/albayan/internal/cli/pagination"
	"github.com/mannit-co/albayan/internal/engine"
)

const (
	dateLayout   = "2006-01-02"
	ellipsis     = "…"
	detailIndent = 14
	minWrapWidth = 20
)

// fit truncates s to width cells.
func fit(s string, width int) string {
	return truncate.StringWithTail(s, uint(max(width, 1)), ellipsis) //nolint:gosec // width is clamped positive
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// CandidateScreen lists candidates.
func CandidateScreen() Screen[engine.Candidate] {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 30},
		{Title: "Test", Width: 22},
		{Title: "Status", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Invited", Width: 10},
	}
	return Screen[engine.Candidate]{
		Title:   "Candidates",
		Columns: columns,
		Row: func(c engine.Candidate) table.Row {
			return table.Row{
				fit(c.Name, columns[0].Width),
				fit(c.Email, columns[1].Width),
				fit(c.TestTitle, columns[2].Width),
				string(c.Status),
				c.ScoreLabel(),
				formatDate(c.InvitedAt),
			}
		},
		Detail:     RenderCandidateDetail,
		Sorter:     pagination.NewCandidateSorter(),
		SortFields: []string{"name", "status", "score", "invited"},
	}
}

// TestScreen lists tests.
func TestScreen() Screen[engine.Test] {
	columns := []table.Column{
		{Title: "Title", Width: 32},
		{Title: "Subject", Width: 18},
		{Title: "Minutes", Width: 8},
		{Title: "Questions", Width: 9},
		{Title: "Status", Width: 10},
		{Title: "Created", Width: 10},
	}
	return Screen[engine.Test]{
		Title:   "Tests",
		Columns: columns,
		Row: func(t engine.Test) table.Row {
			return table.Row{
				fit(t.Title, columns[0].Width),
				fit(t.Subject, columns[1].Width),
				strconv.Itoa(t.Duration),
				strconv.Itoa(t.QuestionCount),
				string(t.Status),
				formatDate(t.CreatedAt),
			}
		},
		Detail:     RenderTestDetail,
		Sorter:     pagination.NewTestSorter(),
		SortFields: []string{"title", "subject", "duration", "created"},
	}
}

// QuestionScreen lists question bank entries.
func QuestionScreen() Screen[engine.Question] {
	columns := []table.Column{
		{Title: "Question", Width: 44},
		{Title: "Type", Width: 12},
		{Title: "Difficulty", Width: 10},
		{Title: "Subject", Width: 16},
		{Title: "Marks", Width: 6},
	}
	return Screen[engine.Question]{
		Title:   "Questions",
		Columns: columns,
		Row: func(q engine.Question) table.Row {
			return table.Row{
				fit(q.Text, columns[0].Width),
				string(q.Type),
				string(q.Difficulty),
				fit(q.Subject, columns[3].Width),
				strconv.FormatFloat(q.Marks, 'g', -1, 64),
			}
		},
		Detail:     RenderQuestionDetail,
		Sorter:     pagination.NewQuestionSorter(),
		SortFields: []string{"difficulty", "marks", "type", "created"},
	}
}

type detailField struct {
	label string
	value string
}

func renderDetail(title string, fields []detailField, width int) string {
	var content strings.Builder
	content.WriteString(HeaderStyle.Render(title))
	content.WriteString("\n\n")

	wrap := max(width-borderPadding-detailIndent, minWrapWidth)
	for _, f := range fields {
		value := f.value
		if value == "" {
			value = "-"
		}
		lines := strings.Split(wordwrap.String(value, wrap), "\n")
		content.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", detailIndent, f.label+":")))
		content.WriteString(ValueStyle.Render(lines[0]))
		content.WriteString("\n")
		for _, line := range lines[1:] {
			content.WriteString(strings.Repeat(" ", detailIndent))
			content.WriteString(ValueStyle.Render(line))
			content.WriteString("\n")
		}
	}

	if width <= borderPadding {
		return BoxStyle.Render(content.String())
	}
	return BoxStyle.Width(width - borderPadding).Render(content.String())
}

// RenderCandidateDetail renders one candidate.
func RenderCandidateDetail(c engine.Candidate, width int) string {
	completed := "-"
	if c.CompletedAt != nil {
		completed = c.CompletedAt.Format(time.RFC3339)
	}
	return renderDetail("CANDIDATE", []detailField{
		{"Name", c.Name},
		{"Email", c.Email},
		{"Test", c.TestTitle},
		{"Status", string(c.Status)},
		{"Score", c.ScoreLabel()},
		{"Invited", formatDate(c.InvitedAt)},
		{"Completed", completed},
		{"ID", c.ID},
	}, width)
}

// RenderTestDetail renders one test.
func RenderTestDetail(t engine.Test, width int) string {
	return renderDetail("TEST", []detailField{
		{"Title", t.Title},
		{"Subject", t.Subject},
		{"Duration", fmt.Sprintf("%d min", t.Duration)},
		{"Questions", strconv.Itoa(t.QuestionCount)},
		{"Status", string(t.Status)},
		{"Created", formatDate(t.CreatedAt)},
		{"ID", t.ID},
	}, width)
}

// RenderQuestionDetail renders one question.
func RenderQuestionDetail(q engine.Question, width int) string {
	return renderDetail("QUESTION", []detailField{
		{"Question", q.Text},
		{"Type", string(q.Type)},
		{"Difficulty", string(q.Difficulty)},
		{"Subject", q.Subject},
		{"Marks", strconv.FormatFloat(q.Marks, 'g', -1, 64)},
		{"Tags", strings.Join(q.Tags, ", ")},
		{"Created", formatDate(q.CreatedAt)},
		{"ID", q.ID},
	}, width)
}
