package domain

import "time"

// Settings is the singleton site configuration edited from the back office.
type Settings struct {
	SiteName     string
	SupportEmail string
	SupportPhone string
	Address      string
	OutageBanner string
	UpdatedAt    time.Time
}

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Subject   string
	Body      string
	CreatedAt time.Time
}
