package move_reservation

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	moveReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/move_reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// MoveReservationRequest HTTP request model
type MoveReservationRequest struct {
	SpecialistID int64  `json:"specialistId"`
	Date         string `json:"date"` // "2025-10-15"
	Slot         string `json:"slot"` // "09:30"
}

// ServiceItem услуга в составе брони
type ServiceItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// MoveReservationResponse HTTP response model.
// moved == false означает бросок на свой же слот - успешный no-op.
type MoveReservationResponse struct {
	ID           int64         `json:"id"`
	SpecialistID int64         `json:"specialistId"`
	Date         string        `json:"date"`
	StartSlot    string        `json:"startSlot"`
	StartTime    string        `json:"startTime"`
	EndTime      string        `json:"endTime"`
	DurationMin  int           `json:"durationMin"`
	Services     []ServiceItem `json:"services"`
	Moved        bool          `json:"moved"`
	CreatedAt    string        `json:"createdAt"`
	UpdatedAt    string        `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MoveReservationRequest) ToUseCaseRequest(reservationID int64) (*moveReservation.Request, error) {
	slot, err := types.NewTimeStringFromString(r.Slot)
	if err != nil {
		return nil, err
	}

	return &moveReservation.Request{
		ReservationID: reservationID,
		SpecialistID:  r.SpecialistID,
		Date:          r.Date,
		Slot:          slot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *moveReservation.Response) *MoveReservationResponse {
	services := make([]ServiceItem, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = ServiceItem{ID: s.ID, Name: s.Name, Color: s.Color}
	}

	return &MoveReservationResponse{
		ID:           resp.ID,
		SpecialistID: resp.SpecialistID,
		Date:         resp.ReservationDate.Format(domain.DateFormat),
		StartSlot:    domain.ToTimeOfDay(resp.StartTime).String(),
		StartTime:    resp.StartTime.Format(time.RFC3339),
		EndTime:      resp.EndTime.Format(time.RFC3339),
		DurationMin:  resp.DurationMinutes,
		Services:     services,
		Moved:        resp.Moved,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
