package domain

import "time"

// LeadPool is a named bucket of leads awaiting distribution to agents.
type LeadPool struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
