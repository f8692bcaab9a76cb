package model

import "time"

// MCQQuestion belongs to exactly one contest. CorrectIndex is only shown to
// the contest's creator; the redacted view replaces it with -1.
type MCQQuestion struct {
	ID           string    `json:"id"`
	ContestID    string    `json:"contest_id"`
	QuestionText string    `json:"question_text"`
	Options      []string  `json:"options"`
	CorrectIndex int       `json:"correct_index"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"created_at"`
}

// Redacted returns a copy safe to show to non-creators.
func (q MCQQuestion) Redacted() MCQQuestion {
	q.CorrectIndex = -1
	return q
}
