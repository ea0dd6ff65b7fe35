package domain

import "time"

// Specialist represents a staff member who can be booked for reservations
type Specialist struct {
	ID        int64
	FirstName string
	LastName  string
	PhotoURL  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns the display name of the specialist
func (s *Specialist) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
