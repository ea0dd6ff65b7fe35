package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name              string           `json:"name"`
	Price             float64          `json:"price"`
	Color             string           `json:"color"`
	CustomFieldValues map[int64]string `json:"customFieldValues,omitempty"`
}

// UpdateServiceRequest запрос на обновление услуги.
// Значения пользовательских полей заменяются целиком.
type UpdateServiceRequest struct {
	Name              string           `json:"name"`
	Price             float64          `json:"price"`
	Color             string           `json:"color"`
	CustomFieldValues map[int64]string `json:"customFieldValues,omitempty"`
}

// CreateCustomFieldRequest запрос на создание пользовательского поля
type CreateCustomFieldRequest struct {
	Name string `json:"name"`
}

// UpdateColumnOrderRequest запрос на смену порядка колонок таблицы услуг
type UpdateColumnOrderRequest struct {
	Columns []string `json:"columns"`
}

// Response модели

// ServiceResponse услуга в ответе API
type ServiceResponse struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	Price             float64          `json:"price"`
	Color             string           `json:"color"`
	CustomFieldValues map[int64]string `json:"customFieldValues"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
}

// CustomFieldResponse пользовательское поле в ответе API
type CustomFieldResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ColumnKey string    `json:"columnKey"`
	CreatedAt time.Time `json:"createdAt"`
}

// CustomFieldListResponse список пользовательских полей
type CustomFieldListResponse struct {
	Fields []*CustomFieldResponse `json:"fields"`
}

// ColumnOrderResponse порядок колонок таблицы услуг
type ColumnOrderResponse struct {
	Columns []string `json:"columns"`
}

// FromDomainService конвертирует domain услугу в response
func FromDomainService(s *domain.Service) *ServiceResponse {
	values := s.CustomFields
	if values == nil {
		values = make(map[int64]string)
	}

	return &ServiceResponse{
		ID:                s.ID,
		Name:              s.Name,
		Price:             s.Price,
		Color:             s.Color,
		CustomFieldValues: values,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// FromDomainServices конвертирует список domain услуг
func FromDomainServices(services []*domain.Service) *ServiceListResponse {
	result := make([]*ServiceResponse, len(services))
	for i, s := range services {
		result[i] = FromDomainService(s)
	}
	return &ServiceListResponse{Services: result}
}

// FromDomainCustomField конвертирует domain поле в response
func FromDomainCustomField(f *domain.CustomField) *CustomFieldResponse {
	return &CustomFieldResponse{
		ID:        f.ID,
		Name:      f.Name,
		ColumnKey: domain.CustomFieldColumnKey(f.ID),
		CreatedAt: f.CreatedAt,
	}
}

// FromDomainCustomFields конвертирует список domain полей
func FromDomainCustomFields(fields []*domain.CustomField) *CustomFieldListResponse {
	result := make([]*CustomFieldResponse, len(fields))
	for i, f := range fields {
		result[i] = FromDomainCustomField(f)
	}
	return &CustomFieldListResponse{Fields: result}
}

// FromDomainColumnOrder конвертирует порядок колонок в response
func FromDomainColumnOrder(columns []*domain.ColumnOrder) *ColumnOrderResponse {
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.ColumnKey
	}
	return &ColumnOrderResponse{Columns: keys}
}
