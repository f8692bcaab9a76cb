package model

import "time"

type DSAProblem struct {
	ID               string     `json:"id"`
	ContestID        string     `json:"contest_id"`
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Points           int        `json:"points"`
	TimeLimitSeconds int        `json:"time_limit_seconds"`
	MemoryLimitBytes int64      `json:"memory_limit_bytes"`
	CreatedAt        time.Time  `json:"created_at"`
	TestCases        []TestCase `json:"test_cases,omitempty"`
}

type TestCase struct {
	ID             string `json:"id"`
	ProblemID      string `json:"problem_id"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"is_hidden"`
	SortOrder      int    `json:"sort_order"`
}

// Redacted strips hidden test cases for non-creators. Visible cases keep
// their input and expected output so contestees can debug against them.
func (p DSAProblem) Redacted() DSAProblem {
	visible := make([]TestCase, 0, len(p.TestCases))
	for _, tc := range p.TestCases {
		if !tc.IsHidden {
			visible = append(visible, tc)
		}
	}
	p.TestCases = visible
	return p
}
