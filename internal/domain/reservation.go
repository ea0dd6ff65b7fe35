package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Reservation represents a booked time window for one specialist.
// The core invariant: for any specialist no two reservations may have
// overlapping [StartTime, EndTime) intervals. Touching endpoints are legal.
type Reservation struct {
	ID           int64
	SpecialistID int64

	// ReservationDate денормализованная дата (UTC) для выборок по дню,
	// всегда выводится из StartTime и отдельно не задается
	ReservationDate time.Time

	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int

	// Services упорядоченный список услуг; первая услуга определяет
	// цвет и название плашки в календаре
	Services []ServiceRef

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceRef краткая ссылка на услугу внутри бронирования
type ServiceRef struct {
	ID    int64
	Name  string
	Color string
}

// StartSlot returns the wall-clock slot label of the reservation start
func (r *Reservation) StartSlot() types.TimeString {
	return ToTimeOfDay(r.StartTime)
}

// StartDate returns the wall-clock calendar date label (YYYY-MM-DD)
// of the reservation start
func (r *Reservation) StartDate() string {
	return r.StartTime.Local().Format(DateFormat)
}

// ServiceIDs returns the ordered service ids of the reservation
func (r *Reservation) ServiceIDs() []int64 {
	ids := make([]int64, len(r.Services))
	for i, s := range r.Services {
		ids[i] = s.ID
	}
	return ids
}

// ReservationDateOf derives the denormalized reservation date (UTC midnight)
// from an absolute start timestamp
func ReservationDateOf(startTime time.Time) time.Time {
	u := startTime.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
