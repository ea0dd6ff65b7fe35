package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// CreateSpecialistRequest запрос на создание сотрудника
type CreateSpecialistRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateSpecialistRequest запрос на обновление сотрудника
type UpdateSpecialistRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Response модели

// SpecialistResponse сотрудник в ответе API
type SpecialistResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	PhotoURL  *string   `json:"photoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SpecialistListResponse список сотрудников
type SpecialistListResponse struct {
	Specialists []*SpecialistResponse `json:"specialists"`
}

// FromDomainSpecialist конвертирует domain сотрудника в response
func FromDomainSpecialist(s *domain.Specialist) *SpecialistResponse {
	return &SpecialistResponse{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		FullName:  s.FullName(),
		PhotoURL:  s.PhotoURL,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainSpecialists конвертирует список domain сотрудников
func FromDomainSpecialists(specialists []*domain.Specialist) *SpecialistListResponse {
	result := make([]*SpecialistResponse, len(specialists))
	for i, s := range specialists {
		result[i] = FromDomainSpecialist(s)
	}
	return &SpecialistListResponse{Specialists: result}
}
