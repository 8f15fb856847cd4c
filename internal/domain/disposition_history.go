package domain

import "time"

// DispositionHistory is an immutable audit row recorded on every disposition
// change, capturing the three levels at time of change and the acting user.
type DispositionHistory struct {
	ID                  string
	LeadID              string
	FirstDispositionID  *string
	SecondDispositionID *string
	ThirdDispositionID  *string
	ChangedByID         string
	CreatedAt           time.Time
}
