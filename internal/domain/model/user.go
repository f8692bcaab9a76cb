package model

import (
	"time"
)

const (
	RoleCreator   = "creator"
	RoleContestee = "contestee"
)

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

func ValidRole(role string) bool {
	return role == RoleCreator || role == RoleContestee
}
