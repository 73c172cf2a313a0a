package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mannit-co/albayan/internal/engine"
)

func TestScreens_RowsMatchColumns(t *testing.T) {
	score := 81.5
	c := engine.Candidate{Name: "Layla", Email: "layla@example.com", Status: engine.CandidateCompleted, Score: &score}
	cs := CandidateScreen()
	assert.Len(t, cs.Row(c), len(cs.Columns))
	assert.Equal(t, "81.5%", cs.Row(c)[4])
	assert.Equal(t, "-", cs.Row(c)[5], "zero time renders as a dash")

	ts := TestScreen()
	assert.Len(t, ts.Row(engine.Test{Title: "Algebra"}), len(ts.Columns))

	qs := QuestionScreen()
	row := qs.Row(engine.Question{Text: "What is 2+2?", Marks: 2.5})
	assert.Len(t, row, len(qs.Columns))
	assert.Equal(t, "2.5", row[4])

	for _, f := range cs.SortFields {
		require.True(t, cs.Sorter.IsValidField(f), f)
	}
	for _, f := range ts.SortFields {
		require.True(t, ts.Sorter.IsValidField(f), f)
	}
	for _, f := range qs.SortFields {
		require.True(t, qs.Sorter.IsValidField(f), f)
	}
}

func TestFit(t *testing.T) {
	assert.Equal(t, "short", fit("short", 10))
	out := fit("a very long question text", 10)
	assert.LessOrEqual(t, len([]rune(out)), 10)
	assert.Contains(t, out, ellipsis)
}

func TestRenderDetails(t *testing.T) {
	q := engine.Question{
		ID:   "q1",
		Text: "Explain the difference between a process and a thread in an operating system.",
		Tags: []string{"os", "concurrency"},
	}
	out := RenderQuestionDetail(q, 60)
	assert.Contains(t, out, "QUESTION")
	assert.Contains(t, out, "os, concurrency")
	assert.Contains(t, out, "q1")

	assert.Contains(t, RenderTestDetail(engine.Test{Title: "Physics", Duration: 45}, 80), "45 min")
	assert.Contains(t, RenderCandidateDetail(engine.Candidate{Name: "Omar"}, 0), "Omar")
}

func TestRenderDashboard(t *testing.T) {
	s := engine.Summary{
		Candidates:            1234,
		CandidatesByStatus:    map[engine.CandidateStatus]int{engine.CandidateCompleted: 1000, engine.CandidateInvited: 234},
		AverageScore:          72.4,
		Tests:                 3,
		TestsByStatus:         map[engine.TestStatus]int{engine.TestPublished: 2, engine.TestDraft: 1},
		Questions:             40,
		QuestionsByDifficulty: map[engine.Difficulty]int{engine.DifficultyHard: 40},
	}

	wide := RenderDashboard(s, 120)
	assert.Contains(t, wide, "1,234")
	assert.Contains(t, wide, "average score 72.4%")
	assert.Contains(t, wide, "TESTS")
	assert.Contains(t, wide, "QUESTIONS")

	narrow := RenderDashboard(s, 40)
	assert.Greater(t, len(splitLines(narrow)), len(splitLines(wide)))
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return lines
}
