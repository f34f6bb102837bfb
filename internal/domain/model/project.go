package model

import "time"

// ProjectStatus describes project lifecycle.
type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "DRAFT"
	ProjectStatusOpen       ProjectStatus = "OPEN"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusCancelled  ProjectStatus = "CANCELLED"
)

var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusDraft:      {ProjectStatusOpen, ProjectStatusCancelled},
	ProjectStatusOpen:       {ProjectStatusInProgress, ProjectStatusCancelled},
	ProjectStatusInProgress: {ProjectStatusCompleted},
}

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusOpen, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether next directly follows s.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	for _, allowed := range projectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Project is a unit of requested work owned by a customer.
type Project struct {
	ID          string
	CustomerID  string
	Title       string
	Description string
	Budget      float64
	Deadline    *time.Time
	Status      ProjectStatus
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectPatch lists metadata fields to change. Nil fields are left as is.
type ProjectPatch struct {
	Title       *string
	Description *string
	Budget      *float64
	Deadline    *time.Time
	Featured    *bool
}

// Empty reports a patch without fields.
func (p ProjectPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Budget == nil && p.Deadline == nil && p.Featured == nil
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Status   ProjectStatus
	Featured bool
	Limit    int
}

// ProjectDetails is a project with its bids, newest first.
type ProjectDetails struct {
	Project Project
	Bids    []Bid
}
