package pagination

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mannit-co/albayan/internal/engine"
)

// CompareFunc orders two items ascending: negative when a sorts first.
type CompareFunc[T any] func(a, b T) int

// Sorter sorts items by a named field.
type Sorter[T any] struct {
	fields map[string]CompareFunc[T]
}

// NewSorter creates a Sorter over the given field comparators.
func NewSorter[T any](fields map[string]CompareFunc[T]) *Sorter[T] {
	return &Sorter[T]{fields: fields}
}

// IsValidField checks if the field is valid for sorting.
func (s *Sorter[T]) IsValidField(field string) bool {
	_, ok := s.fields[field]
	return ok
}

// GetValidFields returns all valid sort fields in alphabetical order.
func (s *Sorter[T]) GetValidFields() []string {
	fields := make([]string, 0, len(s.fields))
	for field := range s.fields {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

// ValidateField returns ErrInvalidSortField, listing the valid fields, for
// unknown names. The empty field is valid and means "no sorting".
func (s *Sorter[T]) ValidateField(field string) error {
	if field == "" || s.IsValidField(field) {
		return nil
	}
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
}

// Sort returns a sorted copy of items; the input is not modified.
// Ties keep their input order in both directions. An unknown field returns
// items unchanged.
func (s *Sorter[T]) Sort(items []T, field, order string) []T {
	compare, ok := s.fields[field]
	if !ok {
		return items
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		if order == SortOrderDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted
}

func foldCompare(a, b string) int {
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}

// compareScore orders ungraded candidates before any score.
func compareScore(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}

//nolint:gochecknoglobals // ordinal rank for difficulty sorting
var difficultyRank = map[engine.Difficulty]int{
	engine.DifficultyEasy:   1,
	engine.DifficultyMedium: 2,
	engine.DifficultyHard:   3,
}

// NewCandidateSorter creates a Sorter for candidates.
func NewCandidateSorter() *Sorter[engine.Candidate] {
	return NewSorter(map[string]CompareFunc[engine.Candidate]{
		"name":  func(a, b engine.Candidate) int { return foldCompare(a.Name, b.Name) },
		"email": func(a, b engine.Candidate) int { return foldCompare(a.Email, b.Email) },
		"status": func(a, b engine.Candidate) int {
			return cmp.Compare(a.Status, b.Status)
		},
		"score": func(a, b engine.Candidate) int { return compareScore(a.Score, b.Score) },
		"test":  func(a, b engine.Candidate) int { return foldCompare(a.TestTitle, b.TestTitle) },
		"invited": func(a, b engine.Candidate) int {
			return a.InvitedAt.Compare(b.InvitedAt)
		},
	})
}

// NewTestSorter creates a Sorter for tests.
func NewTestSorter() *Sorter[engine.Test] {
	return NewSorter(map[string]CompareFunc[engine.Test]{
		"title":     func(a, b engine.Test) int { return foldCompare(a.Title, b.Title) },
		"subject":   func(a, b engine.Test) int { return foldCompare(a.Subject, b.Subject) },
		"duration":  func(a, b engine.Test) int { return cmp.Compare(a.Duration, b.Duration) },
		"questions": func(a, b engine.Test) int { return cmp.Compare(a.QuestionCount, b.QuestionCount) },
		"status":    func(a, b engine.Test) int { return cmp.Compare(a.Status, b.Status) },
		"created":   func(a, b engine.Test) int { return a.CreatedAt.Compare(b.CreatedAt) },
	})
}

// NewQuestionSorter creates a Sorter for questions. Difficulty sorts
// easy < medium < hard, with unknown levels first.
func NewQuestionSorter() *Sorter[engine.Question] {
	return NewSorter(map[string]CompareFunc[engine.Question]{
		"text":    func(a, b engine.Question) int { return foldCompare(a.Text, b.Text) },
		"type":    func(a, b engine.Question) int { return cmp.Compare(a.Type, b.Type) },
		"subject": func(a, b engine.Question) int { return foldCompare(a.Subject, b.Subject) },
		"marks":   func(a, b engine.Question) int { return cmp.Compare(a.Marks, b.Marks) },
		"difficulty": func(a, b engine.Question) int {
			return cmp.Compare(difficultyRank[a.Difficulty], difficultyRank[b.Difficulty])
		},
		"created": func(a, b engine.Question) int { return a.CreatedAt.Compare(b.CreatedAt) },
	})
}
