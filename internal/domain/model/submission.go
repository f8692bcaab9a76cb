package model

import "time"

type SubmissionStatus string

const (
	StatusAccepted          SubmissionStatus = "accepted"
	StatusWrongAnswer       SubmissionStatus = "wrong_answer"
	StatusTimeLimitExceeded SubmissionStatus = "time_limit_exceeded"
	StatusRuntimeError      SubmissionStatus = "runtime_error"
)

// MCQSubmission is keyed by (user, question) and immutable: the first
// submission is final.
type MCQSubmission struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	QuestionID    string    `json:"question_id"`
	SelectedIndex int       `json:"selected_index"`
	IsCorrect     bool      `json:"is_correct"`
	PointsEarned  int       `json:"points_earned"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// DSASubmission is keyed by (user, problem). A resubmission replaces the
// stored record only when its points strictly exceed the stored points; on
// a tie or a worse score the record, including code and timestamp, stays
// untouched.
type DSASubmission struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	ProblemID       string           `json:"problem_id"`
	Code            string           `json:"code"`
	Language        string           `json:"language"`
	Status          SubmissionStatus `json:"status"`
	PointsEarned    int              `json:"points_earned"`
	TestCasesPassed int              `json:"test_cases_passed"`
	TotalTestCases  int              `json:"total_test_cases"`
	SubmittedAt     time.Time        `json:"submitted_at"`
}

// Improves reports whether the candidate submission should replace the
// stored one.
func (s *DSASubmission) Improves(existing *DSASubmission) bool {
	return s.PointsEarned > existing.PointsEarned
}
