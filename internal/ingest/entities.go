package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/mannit-co/albayan/internal/engine"
)

// ErrMissingID is returned for records with neither "_id" nor "id".
var ErrMissingID = errors.New("record has no id")

// testRef is a candidate's test, given either as an id or an embedded object.
type testRef struct {
	ID    string
	Title string
}

func (r *testRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			MongoID flexString `json:"_id"`
			ID      flexString `json:"id"`
			Title   string     `json:"title"`
			Name    string     `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		r.ID = firstNonEmpty(obj.MongoID, obj.ID)
		r.Title = firstNonEmpty(obj.Title, obj.Name)
		return nil
	}
	var id flexString
	if err := id.UnmarshalJSON(data); err != nil {
		return err
	}
	r.ID = string(id)
	return nil
}

type rawCandidate struct {
	MongoID     flexString `json:"_id"`
	ID          flexString `json:"id"`
	Name        string     `json:"name"`
	FullName    string     `json:"fullName"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Test        testRef    `json:"test"`
	TestID      flexString `json:"testId"`
	TestIDSnake flexString `json:"test_id"`
	TestTitle   string     `json:"testTitle"`
	TestTitleSn string     `json:"test_title"`
	Status      string     `json:"status"`
	Score       flexFloat  `json:"score"`
	Percentage  flexFloat  `json:"percentage"`
	InvitedAt   flexTime   `json:"invitedAt"`
	InvitedAtSn flexTime   `json:"invited_at"`
	CreatedAt   flexTime   `json:"createdAt"`
	CreatedAtSn flexTime   `json:"created_at"`
	CompletedAt flexTime   `json:"completedAt"`
	CompletedSn flexTime   `json:"completed_at"`
	SubmittedAt flexTime   `json:"submittedAt"`
}

// candidateStatusAliases maps platform spellings onto CandidateStatus.
//
//nolint:gochecknoglobals // static lookup table
var candidateStatusAliases = map[string]engine.CandidateStatus{
	"invited":     engine.CandidateInvited,
	"pending":     engine.CandidateInvited,
	"not_started": engine.CandidateInvited,
	"in_progress": engine.CandidateInProgress,
	"inprogress":  engine.CandidateInProgress,
	"started":     engine.CandidateInProgress,
	"ongoing":     engine.CandidateInProgress,
	"completed":   engine.CandidateCompleted,
	"submitted":   engine.CandidateCompleted,
	"done":        engine.CandidateCompleted,
	"expired":     engine.CandidateExpired,
	"timed_out":   engine.CandidateExpired,
}

func toCandidate(r rawCandidate) (engine.Candidate, error) {
	id := firstNonEmpty(r.MongoID, r.ID)
	if id == "" {
		return engine.Candidate{}, ErrMissingID
	}

	name := firstNonEmpty(r.Name, r.FullName)
	if name == "" {
		name = strings.TrimSpace(r.FirstName + " " + r.LastName)
	}

	status := engine.CandidateStatus(normalizeToken(r.Status))
	if alias, ok := candidateStatusAliases[string(status)]; ok {
		status = alias
	}
	if status == "" {
		status = engine.CandidateInvited
	}

	c := engine.Candidate{
		ID:        id,
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(r.Email)),
		TestID:    firstNonEmpty(r.Test.ID, string(r.TestID), string(r.TestIDSnake)),
		TestTitle: firstNonEmpty(r.Test.Title, r.TestTitle, r.TestTitleSn),
		Status:    status,
		Score:     firstSet(r.Score, r.Percentage).Ptr(),
		InvitedAt: firstTime(r.InvitedAt, r.InvitedAtSn, r.CreatedAt, r.CreatedAtSn),
	}
	if completed := firstTime(r.CompletedAt, r.CompletedSn, r.SubmittedAt); !completed.IsZero() {
		c.CompletedAt = &completed
	}
	return c, nil
}

type rawTest struct {
	MongoID       flexString      `json:"_id"`
	ID            flexString      `json:"id"`
	Title         string          `json:"title"`
	Name          string          `json:"name"`
	Subject       string          `json:"subject"`
	Category      string          `json:"category"`
	Duration      flexInt         `json:"duration"`
	DurationMin   flexInt         `json:"durationMinutes"`
	DurationSn    flexInt         `json:"duration_minutes"`
	TimeLimit     flexInt         `json:"timeLimit"`
	QuestionCount flexInt         `json:"questionCount"`
	QuestionSn    flexInt         `json:"question_count"`
	Questions     json.RawMessage `json:"questions"`
	Status        string          `json:"status"`
	IsPublished   *bool           `json:"isPublished"`
	CreatedAt     flexTime        `json:"createdAt"`
	CreatedAtSn   flexTime        `json:"created_at"`
}

func toTest(r rawTest) (engine.Test, error) {
	id := firstNonEmpty(r.MongoID, r.ID)
	if id == "" {
		return engine.Test{}, ErrMissingID
	}

	count := flexInt{firstSet(r.QuestionCount.flexFloat, r.QuestionSn.flexFloat)}.Int()
	if count == 0 && len(r.Questions) > 0 {
		var qs []json.RawMessage
		if json.Unmarshal(r.Questions, &qs) == nil {
			count = len(qs)
		}
	}

	status := engine.TestStatus(normalizeToken(r.Status))
	switch {
	case status == "active" || status == "live":
		status = engine.TestPublished
	case status == "" && r.IsPublished != nil && *r.IsPublished:
		status = engine.TestPublished
	case status == "":
		status = engine.TestDraft
	}

	return engine.Test{
		ID:      id,
		Title:   firstNonEmpty(r.Title, r.Name),
		Subject: firstNonEmpty(r.Subject, r.Category),
		Duration: flexInt{firstSet(
			r.Duration.flexFloat, r.DurationMin.flexFloat, r.DurationSn.flexFloat, r.TimeLimit.flexFloat,
		)}.Int(),
		QuestionCount: count,
		Status:        status,
		CreatedAt:     firstTime(r.CreatedAt, r.CreatedAtSn),
	}, nil
}

type rawQuestion struct {
	MongoID      flexString  `json:"_id"`
	ID           flexString  `json:"id"`
	Text         string      `json:"text"`
	Question     string      `json:"question"`
	QuestionText string      `json:"questionText"`
	Type         string      `json:"type"`
	QuestionType string      `json:"questionType"`
	Difficulty   flexString  `json:"difficulty"`
	Subject      string      `json:"subject"`
	Category     string      `json:"category"`
	Marks        flexFloat   `json:"marks"`
	Points       flexFloat   `json:"points"`
	Tags         flexStrings `json:"tags"`
	CreatedAt    flexTime    `json:"createdAt"`
	CreatedAtSn  flexTime    `json:"created_at"`
}

//nolint:gochecknoglobals // static lookup table
var questionTypeAliases = map[string]engine.QuestionType{
	"mcq":             engine.QuestionMCQ,
	"multiple_choice": engine.QuestionMCQ,
	"multiplechoice":  engine.QuestionMCQ,
	"single_choice":   engine.QuestionMCQ,
	"true_false":      engine.QuestionTrueFalse,
	"truefalse":       engine.QuestionTrueFalse,
	"boolean":         engine.QuestionTrueFalse,
	"short_answer":    engine.QuestionShortAnswer,
	"short":           engine.QuestionShortAnswer,
	"fill_blank":      engine.QuestionShortAnswer,
	"essay":           engine.QuestionEssay,
	"long_answer":     engine.QuestionEssay,
	"descriptive":     engine.QuestionEssay,
}

//nolint:gochecknoglobals // static lookup table
var difficultyAliases = map[string]engine.Difficulty{
	"easy":      engine.DifficultyEasy,
	"1":         engine.DifficultyEasy,
	"low":       engine.DifficultyEasy,
	"medium":    engine.DifficultyMedium,
	"moderate":  engine.DifficultyMedium,
	"2":         engine.DifficultyMedium,
	"hard":      engine.DifficultyHard,
	"difficult": engine.DifficultyHard,
	"3":         engine.DifficultyHard,
	"high":      engine.DifficultyHard,
}

func toQuestion(r rawQuestion) (engine.Question, error) {
	id := firstNonEmpty(r.MongoID, r.ID)
	if id == "" {
		return engine.Question{}, ErrMissingID
	}

	qType := engine.QuestionType(normalizeToken(firstNonEmpty(r.Type, r.QuestionType)))
	if alias, ok := questionTypeAliases[string(qType)]; ok {
		qType = alias
	}

	difficulty := engine.Difficulty(normalizeToken(string(r.Difficulty)))
	if alias, ok := difficultyAliases[string(difficulty)]; ok {
		difficulty = alias
	}

	tags := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		tags = append(tags, strings.ToLower(tag))
	}

	return engine.Question{
		ID:         id,
		Text:       firstNonEmpty(r.Text, r.Question, r.QuestionText),
		Type:       qType,
		Difficulty: difficulty,
		Subject:    firstNonEmpty(r.Subject, r.Category),
		Marks:      firstSet(r.Marks, r.Points).Value,
		Tags:       tags,
		CreatedAt:  firstTime(r.CreatedAt, r.CreatedAtSn),
	}, nil
}
