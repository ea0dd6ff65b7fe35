package move_reservation

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на перенос брони (drag-and-drop)
type Request struct {
	ReservationID int64            // ID переносимой брони
	SpecialistID  int64            // Целевой сотрудник (колонка календаря)
	Date          string           // Дата дня календаря (YYYY-MM-DD)
	Slot          types.TimeString // Целевой слот ("09:30")
}

// Response модель ответа с перенесенной бронью.
// Moved == false означает, что бронь отпущена на своем же слоте -
// успешный no-op, состояние не изменилось.
type Response struct {
	ID              int64
	SpecialistID    int64
	ReservationDate time.Time
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Services        []ServiceResponse
	Moved           bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServiceResponse услуга внутри ответа, в порядке sort_order
type ServiceResponse struct {
	ID    int64
	Name  string
	Color string
}

func toResponse(res *domain.Reservation, moved bool) *Response {
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
		Moved:           moved,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
}
