package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mannit-co/albayan/internal/client"
	"github.com/mannit-co/albayan/internal/engine"
	"github.com/mannit-co/albayan/internal/tui"
)

const interactiveHelp = `
In interactive terminals, launches a TUI with:
  - Page navigation with left/right (h/l, PgUp/PgDn), Home/End
  - Row selection with up/down (k/j) and details with Enter
  - Search by typing '/'
  - Sort cycling with 's' and most-recent-first with 'r'
  - Quit with 'q' or Ctrl+C`

// NewCandidatesCmd creates the "candidates" command.
func NewCandidatesCmd() *cobra.Command {
	return newListCmd(collection[engine.Candidate]{
		name:   "candidates",
		screen: tui.CandidateScreen,
		fetch: func(ctx context.Context, src client.Source) ([]engine.Candidate, error) {
			return src.ListCandidates(ctx)
		},
	}, &cobra.Command{
		Use:   "candidates",
		Short: "List candidates invited to tests",
		Long: `List candidates with their test, status and score.

Filter keys: status, test, email
Sort fields: name, email, status, score, test, invited` + interactiveHelp,
		Example: `  # Completed candidates, best score first
  albayan candidates --filter status=completed --sort score:desc

  # Newest invitations as JSON
  albayan candidates --recent-first --output json`,
	})
}

// NewTestsCmd creates the "tests" command.
func NewTestsCmd() *cobra.Command {
	return newListCmd(collection[engine.Test]{
		name:   "tests",
		screen: tui.TestScreen,
		fetch: func(ctx context.Context, src client.Source) ([]engine.Test, error) {
			return src.ListTests(ctx)
		},
	}, &cobra.Command{
		Use:   "tests",
		Short: "List tests",
		Long: `List tests with subject, duration and question count.

Filter keys: status, subject
Sort fields: title, subject, duration, questions, status, created` + interactiveHelp,
		Example: `  # Published tests, five per page
  albayan tests --filter status=published

  # Third page, ten per page
  albayan tests --page 3 --page-size 10`,
	})
}

// NewQuestionsCmd creates the "questions" command.
func NewQuestionsCmd() *cobra.Command {
	return newListCmd(collection[engine.Question]{
		name:   "questions",
		screen: tui.QuestionScreen,
		fetch: func(ctx context.Context, src client.Source) ([]engine.Question, error) {
			return src.ListQuestions(ctx)
		},
	}, &cobra.Command{
		Use:   "questions",
		Short: "List the question bank",
		Long: `List question bank entries.

Filter keys: type, difficulty, subject, tag
Sort fields: text, type, subject, marks, difficulty, created` + interactiveHelp,
		Example: `  # Hard multiple-choice questions
  albayan questions --filter type=mcq --filter difficulty=hard

  # Search, as YAML
  albayan questions --search recursion --output yaml`,
	})
}
