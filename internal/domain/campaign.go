package domain

import "time"

// Campaign is a trackable outreach campaign. UniqueLink is the shareable
// token used in public redirect URLs; ClickCount is at-least-once across
// clients that lose their dedup cookie.
type Campaign struct {
	ID           string
	Name         string
	Organization string
	UniqueLink   string
	Active       bool
	ClickCount   int64
	AssignedToID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
