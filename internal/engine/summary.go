package engine

// Summary aggregates the three collections for the dashboard.
type Summary struct {
	Candidates            int                     `json:"candidates"              yaml:"candidates"`
	CandidatesByStatus    map[CandidateStatus]int `json:"candidates_by_status"    yaml:"candidates_by_status"`
	AverageScore          float64                 `json:"average_score"           yaml:"average_score"`
	Tests                 int                     `json:"tests"                   yaml:"tests"`
	TestsByStatus         map[TestStatus]int      `json:"tests_by_status"         yaml:"tests_by_status"`
	Questions             int                     `json:"questions"               yaml:"questions"`
	QuestionsByDifficulty map[Difficulty]int      `json:"questions_by_difficulty" yaml:"questions_by_difficulty"`
}

// Summarize counts entities by status and averages graded candidate scores.
func Summarize(candidates []Candidate, tests []Test, questions []Question) Summary {
	s := Summary{
		Candidates:            len(candidates),
		CandidatesByStatus:    make(map[CandidateStatus]int),
		Tests:                 len(tests),
		TestsByStatus:         make(map[TestStatus]int),
		Questions:             len(questions),
		QuestionsByDifficulty: make(map[Difficulty]int),
	}

	var scored int
	var total float64
	for _, c := range candidates {
		s.CandidatesByStatus[c.Status]++
		if c.Score != nil {
			scored++
			total += *c.Score
		}
	}
	if scored > 0 {
		s.AverageScore = total / float64(scored)
	}

	for _, t := range tests {
		s.TestsByStatus[t.Status]++
	}
	for _, q := range questions {
		s.QuestionsByDifficulty[q.Difficulty]++
	}

	return s
}
