package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ServiceItem услуга внутри брони, в порядке sort_order
type ServiceItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ReservationResponse бронь в ответе API
type ReservationResponse struct {
	ID              int64         `json:"id"`
	SpecialistID    int64         `json:"specialistId"`
	Date            string        `json:"date"`      // YYYY-MM-DD
	StartSlot       string        `json:"startSlot"` // "09:30", метка слота начала
	StartTime       time.Time     `json:"startTime"` // RFC3339
	EndTime         time.Time     `json:"endTime"`   // RFC3339
	DurationMinutes int           `json:"durationMinutes"`
	Services        []ServiceItem `json:"services"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// DayScheduleResponse расписание одного дня: фиксированная сетка слотов
// плюс брони дня, упорядоченные по времени начала
type DayScheduleResponse struct {
	Date         string                 `json:"date"`
	Slots        []string               `json:"slots"`
	Reservations []*ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain бронь в response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	services := make([]ServiceItem, len(r.Services))
	for i, s := range r.Services {
		services[i] = ServiceItem{ID: s.ID, Name: s.Name, Color: s.Color}
	}

	return &ReservationResponse{
		ID:              r.ID,
		SpecialistID:    r.SpecialistID,
		Date:            r.ReservationDate.Format(domain.DateFormat),
		StartSlot:       r.StartSlot().String(),
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		DurationMinutes: r.DurationMinutes,
		Services:        services,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainReservations конвертирует список domain броней
func FromDomainReservations(reservations []*domain.Reservation) []*ReservationResponse {
	result := make([]*ReservationResponse, len(reservations))
	for i, r := range reservations {
		result[i] = FromDomainReservation(r)
	}
	return result
}

// SlotGridLabels возвращает метки сетки слотов для ответа API
func SlotGridLabels() []string {
	grid := domain.SlotGrid()
	labels := make([]string, len(grid))
	for i, s := range grid {
		labels[i] = s.String()
	}
	return labels
}
