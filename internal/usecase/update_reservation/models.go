package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модель запроса на полное обновление брони
type Request struct {
	ReservationID   int64     // ID обновляемой брони
	SpecialistID    int64     // ID сотрудника
	StartTime       time.Time // Абсолютное время начала (RFC3339)
	DurationMinutes int       // Длительность, положительное кратное 30
	ServiceIDs      []int64   // Упорядоченный список услуг, минимум одна
}

// Response модель ответа с обновленной бронью
type Response struct {
	ID              int64
	SpecialistID    int64
	ReservationDate time.Time
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Services        []ServiceResponse
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServiceResponse услуга внутри ответа, в порядке sort_order
type ServiceResponse struct {
	ID    int64
	Name  string
	Color string
}

func toResponse(res *domain.Reservation) *Response {
	services := make([]ServiceResponse, len(res.Services))
	for i, s := range res.Services {
		services[i] = ServiceResponse{ID: s.ID, Name: s.Name, Color: s.Color}
	}

	return &Response{
		ID:              res.ID,
		SpecialistID:    res.SpecialistID,
		ReservationDate: res.ReservationDate,
		StartTime:       res.StartTime,
		EndTime:         res.EndTime,
		DurationMinutes: res.DurationMinutes,
		Services:        services,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
}
