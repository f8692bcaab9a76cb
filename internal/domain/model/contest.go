package model

import "time"

type Contest struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	CreatorID   string    `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsActive reports whether t falls inside the contest window. Both
// boundaries are inclusive.
func (c *Contest) IsActive(t time.Time) bool {
	return !t.Before(c.StartTime) && !t.After(c.EndTime)
}

// CanAuthor is the single authorization predicate for authoring operations
// on a contest (adding questions, viewing answers and hidden test cases).
func (c *Contest) CanAuthor(userID string) bool {
	return c.CreatorID == userID
}

// CanCompete reports whether a user may submit to the contest. Creators
// author; they do not compete in their own contest.
func (c *Contest) CanCompete(userID string) bool {
	return c.CreatorID != userID
}
