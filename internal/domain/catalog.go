package domain

import "time"

// Plan is an internet service plan shown on the public site.
type Plan struct {
	ID          int64
	Name        string
	SpeedMbps   int
	PriceCents  int64
	Description string
	Featured    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FAQ is a public frequently-asked question.
type FAQ struct {
	ID        int64
	Question  string
	Answer    string
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Technician is a directory entry for a field technician.
type Technician struct {
	ID        int64
	Name      string
	Title     string
	Region    string
	Phone     string
	PhotoURL  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
