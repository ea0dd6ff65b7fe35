package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	createReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SpecialistID int64   `json:"specialistId"`
	StartTime    string  `json:"startTime"` // RFC3339
	DurationMin  int     `json:"durationMin"`
	ServiceIDs   []int64 `json:"serviceIds"`
}

// ServiceItem услуга в составе брони
type ServiceItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           int64         `json:"id"`
	SpecialistID int64         `json:"specialistId"`
	Date         string        `json:"date"`
	StartSlot    string        `json:"startSlot"`
	StartTime    string        `json:"startTime"`
	EndTime      string        `json:"endTime"`
	DurationMin  int           `json:"durationMin"`
	Services     []ServiceItem `json:"services"`
	CreatedAt    string        `json:"createdAt"`
	UpdatedAt    string        `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		SpecialistID:    r.SpecialistID,
		StartTime:       startTime,
		DurationMinutes: r.DurationMin,
		ServiceIDs:      r.ServiceIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	services := make([]ServiceItem, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = ServiceItem{ID: s.ID, Name: s.Name, Color: s.Color}
	}

	return &ReservationResponse{
		ID:           resp.ID,
		SpecialistID: resp.SpecialistID,
		Date:         resp.ReservationDate.Format(domain.DateFormat),
		StartSlot:    domain.ToTimeOfDay(resp.StartTime).String(),
		StartTime:    resp.StartTime.Format(time.RFC3339),
		EndTime:      resp.EndTime.Format(time.RFC3339),
		DurationMin:  resp.DurationMinutes,
		Services:     services,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
