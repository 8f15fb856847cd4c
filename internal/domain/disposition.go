package domain

import "time"

// DispositionCategory tags third-level dispositions.
type DispositionCategory string

const (
	DispositionCategorySale          DispositionCategory = "SALE"
	DispositionCategoryFollowUp      DispositionCategory = "FOLLOW_UP"
	DispositionCategoryNotInterested DispositionCategory = "NOT_INTERESTED"
	DispositionCategoryUnreachable   DispositionCategory = "UNREACHABLE"
	DispositionCategoryDNC           DispositionCategory = "DNC"
)

// ValidDispositionCategory reports whether the value is a known category.
func ValidDispositionCategory(c DispositionCategory) bool {
	switch c {
	case DispositionCategorySale, DispositionCategoryFollowUp,
		DispositionCategoryNotInterested, DispositionCategoryUnreachable,
		DispositionCategoryDNC:
		return true
	}
	return false
}

// FirstDisposition is a top-level outcome; the set is seeded, not user managed.
type FirstDisposition struct {
	ID   string
	Name string
}

// SecondDisposition refines a first-level outcome. Names are unique per level.
type SecondDisposition struct {
	ID        string
	Name      string
	FirstID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ThirdDisposition refines a second-level outcome. Uniqueness is on
// (name, category).
type ThirdDisposition struct {
	ID        string
	Name      string
	SecondID  string
	Category  DispositionCategory
	CreatedAt time.Time
	UpdatedAt time.Time
}
