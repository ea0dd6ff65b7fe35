package create_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Валидация выполняется ДО любого обращения к хранилищу.
func validateRequest(req *Request) error {
	if req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: durationMinutes must be a multiple of %d", ErrInvalidInput, domain.SlotDurationMinutes)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate serviceID %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// serviceRefs конвертирует услуги каталога в упорядоченные ссылки брони
func serviceRefs(services []*domain.Service) []domain.ServiceRef {
	refs := make([]domain.ServiceRef, len(services))
	for i, s := range services {
		refs[i] = domain.ServiceRef{ID: s.ID, Name: s.Name, Color: s.Color}
	}
	return refs
}
