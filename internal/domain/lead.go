package domain

import "time"

// Lead is a captured contact. A lead belongs to at most one pool and stays
// unassigned until explicitly distributed to an agent.
type Lead struct {
	ID                  string
	FullName            string
	Phone               string
	Email               *string
	Sector              *string
	Products            []string
	CampaignID          *string
	PoolID              *string
	AssignedToID        *string
	FirstDispositionID  *string
	SecondDispositionID *string
	ThirdDispositionID  *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
