package engine

import (
	"strconv"
	"strings"
	"time"
)

// CandidateStatus is where a candidate is in the test-taking lifecycle.
type CandidateStatus string

// Candidate statuses reported by the platform.
const (
	CandidateInvited    CandidateStatus = "invited"
	CandidateInProgress CandidateStatus = "in_progress"
	CandidateCompleted  CandidateStatus = "completed"
	CandidateExpired    CandidateStatus = "expired"
)

// TestStatus is the publication state of a test.
type TestStatus string

// Test statuses.
const (
	TestDraft     TestStatus = "draft"
	TestPublished TestStatus = "published"
	TestArchived  TestStatus = "archived"
)

// QuestionType is the answer format of a question bank entry.
type QuestionType string

// Question types.
const (
	QuestionMCQ         QuestionType = "mcq"
	QuestionTrueFalse   QuestionType = "true_false"
	QuestionShortAnswer QuestionType = "short_answer"
	QuestionEssay       QuestionType = "essay"
)

// Difficulty grades a question.
type Difficulty string

// Difficulty levels.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Searchable is implemented by entities that can be matched by a free-text query.
type Searchable interface {
	SearchText() string
}

// Filterable exposes named fields for "key=value" filter expressions.
// ok is false for keys the entity does not know.
type Filterable interface {
	FilterValues(key string) (values []string, ok bool)
	FilterKeys() []string
}

// Timestamped is implemented by entities that can be ordered by recency.
type Timestamped interface {
	Timestamp() time.Time
}

// Candidate is a person invited to take a test.
type Candidate struct {
	ID          string          `json:"id"                     yaml:"id"`
	Name        string          `json:"name"                   yaml:"name"`
	Email       string          `json:"email"                  yaml:"email"`
	TestID      string          `json:"test_id,omitempty"      yaml:"test_id,omitempty"`
	TestTitle   string          `json:"test_title,omitempty"   yaml:"test_title,omitempty"`
	Status      CandidateStatus `json:"status"                 yaml:"status"`
	Score       *float64        `json:"score,omitempty"        yaml:"score,omitempty"`
	InvitedAt   time.Time       `json:"invited_at"             yaml:"invited_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// SearchText implements Searchable.
func (c Candidate) SearchText() string {
	return strings.Join([]string{c.Name, c.Email, c.TestTitle}, " ")
}

// FilterKeys implements Filterable.
func (c Candidate) FilterKeys() []string {
	return []string{"status", "test", "email"}
}

// FilterValues implements Filterable.
func (c Candidate) FilterValues(key string) ([]string, bool) {
	switch key {
	case "status":
		return []string{string(c.Status)}, true
	case "test":
		return []string{c.TestID, c.TestTitle}, true
	case "email":
		return []string{c.Email}, true
	default:
		return nil, false
	}
}

// Timestamp implements Timestamped.
func (c Candidate) Timestamp() time.Time {
	return c.InvitedAt
}

// ScoreLabel renders the score as a percentage, or "-" when not graded.
func (c Candidate) ScoreLabel() string {
	if c.Score == nil {
		return "-"
	}
	return strconv.FormatFloat(*c.Score, 'f', 1, 64) + "%"
}

// Test is an assessment assembled from question bank entries.
type Test struct {
	ID            string     `json:"id"             yaml:"id"`
	Title         string     `json:"title"          yaml:"title"`
	Subject       string     `json:"subject"        yaml:"subject"`
	Duration      int        `json:"duration"       yaml:"duration"`
	QuestionCount int        `json:"question_count" yaml:"question_count"`
	Status        TestStatus `json:"status"         yaml:"status"`
	CreatedAt     time.Time  `json:"created_at"     yaml:"created_at"`
}

// SearchText implements Searchable.
func (t Test) SearchText() string {
	return t.Title + " " + t.Subject
}

// FilterKeys implements Filterable.
func (t Test) FilterKeys() []string {
	return []string{"status", "subject"}
}

// FilterValues implements Filterable.
func (t Test) FilterValues(key string) ([]string, bool) {
	switch key {
	case "status":
		return []string{string(t.Status)}, true
	case "subject":
		return []string{t.Subject}, true
	default:
		return nil, false
	}
}

// Timestamp implements Timestamped.
func (t Test) Timestamp() time.Time {
	return t.CreatedAt
}

// Question is a single question bank entry.
type Question struct {
	ID         string       `json:"id"         yaml:"id"`
	Text       string       `json:"text"       yaml:"text"`
	Type       QuestionType `json:"type"       yaml:"type"`
	Difficulty Difficulty   `json:"difficulty" yaml:"difficulty"`
	Subject    string       `json:"subject"    yaml:"subject"`
	Marks      float64      `json:"marks"      yaml:"marks"`
	Tags       []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedAt  time.Time    `json:"created_at" yaml:"created_at"`
}

// SearchText implements Searchable.
func (q Question) SearchText() string {
	return q.Text + " " + q.Subject + " " + strings.Join(q.Tags, " ")
}

// FilterKeys implements Filterable.
func (q Question) FilterKeys() []string {
	return []string{"type", "difficulty", "subject", "tag"}
}

// FilterValues implements Filterable.
func (q Question) FilterValues(key string) ([]string, bool) {
	switch key {
	case "type":
		return []string{string(q.Type)}, true
	case "difficulty":
		return []string{string(q.Difficulty)}, true
	case "subject":
		return []string{q.Subject}, true
	case "tag":
		return q.Tags, true
	default:
		return nil, false
	}
}

// Timestamp implements Timestamped.
func (q Question) Timestamp() time.Time {
	return q.CreatedAt
}
