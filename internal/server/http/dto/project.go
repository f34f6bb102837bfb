package dto

import "time"

// CreateProjectRequest describes a new project.
type CreateProjectRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Budget      float64    `json:"budget"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// UpdateProjectRequest lists metadata fields to change. Omitted fields stay as is.
type UpdateProjectRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Featured    *bool      `json:"featured,omitempty"`
}

// ProjectResponse represents a project.
type ProjectResponse struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customerId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Budget      float64    `json:"budget"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	Featured    bool       `json:"featured"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ProjectDetailsResponse is a project with its bids, newest first.
type ProjectDetailsResponse struct {
	ProjectResponse
	Bids []BidResponse `json:"bids"`
}
