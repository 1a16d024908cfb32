package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant).
// El slug es único y sirve como identificador público en URLs.
type Company struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Website     string
	Logo        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
