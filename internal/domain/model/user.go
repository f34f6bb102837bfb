package model

import "time"

// User is a marketplace account. Rating and TotalProjects are maintained
// outside the lifecycle engine.
type User struct {
	ID            string
	Email         string
	Name          string
	PasswordHash  string
	Role          Role
	Rating        float64
	TotalProjects int
	CreatedAt     time.Time
}

// Identity returns the caller identity of the user.
func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Role: u.Role}
}
