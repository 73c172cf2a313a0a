package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mannit-co/albayan/internal/engine"
)

// printer formats counts with thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

const (
	dashboardLabelWidth = 14
	dashboardMinWidth   = 30
	dashboardColumns    = 3
)

type countRow struct {
	label string
	count int
}

// RenderDashboard renders the assessment overview: one panel per collection.
// Panels sit side by side when width allows and stack otherwise.
func RenderDashboard(s engine.Summary, width int) string {
	candidates := renderPanel("CANDIDATES", s.Candidates, []countRow{
		{"invited", s.CandidatesByStatus[engine.CandidateInvited]},
		{"in progress", s.CandidatesByStatus[engine.CandidateInProgress]},
		{"completed", s.CandidatesByStatus[engine.CandidateCompleted]},
		{"expired", s.CandidatesByStatus[engine.CandidateExpired]},
	}, averageLine(s))

	tests := renderPanel("TESTS", s.Tests, []countRow{
		{"published", s.TestsByStatus[engine.TestPublished]},
		{"draft", s.TestsByStatus[engine.TestDraft]},
		{"archived", s.TestsByStatus[engine.TestArchived]},
	}, "")

	questions := renderPanel("QUESTIONS", s.Questions, []countRow{
		{"easy", s.QuestionsByDifficulty[engine.DifficultyEasy]},
		{"medium", s.QuestionsByDifficulty[engine.DifficultyMedium]},
		{"hard", s.QuestionsByDifficulty[engine.DifficultyHard]},
	}, "")

	panels := []string{candidates, tests, questions}
	if width >= dashboardMinWidth*dashboardColumns {
		return lipgloss.JoinHorizontal(lipgloss.Top, panels...) + "\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...) + "\n"
}

func averageLine(s engine.Summary) string {
	if s.CandidatesByStatus[engine.CandidateCompleted] == 0 && s.AverageScore == 0 {
		return ""
	}
	return fmt.Sprintf("average score %.1f%%", s.AverageScore)
}

func renderPanel(title string, total int, rows []countRow, footer string) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(ValueStyle.Render(printer.Sprintf("%d", total)))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", dashboardLabelWidth, r.label)))
		b.WriteString(ValueStyle.Render(printer.Sprintf("%d", r.count)))
		b.WriteString("\n")
	}
	if footer != "" {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(footer))
		b.WriteString("\n")
	}
	return BoxStyle.Width(dashboardMinWidth).Render(strings.TrimRight(b.String(), "\n"))
}
