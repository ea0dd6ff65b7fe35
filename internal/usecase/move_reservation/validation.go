package move_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Целевой слот обязан лежать на сетке расписания: drag-and-drop
// оперирует только ячейками календаря.
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
	}

	if req.Slot.IsZero() {
		return fmt.Errorf("%w: slot is required", ErrInvalidInput)
	}
	if err := req.Slot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid slot format: %v", ErrInvalidInput, err)
	}

	if !domain.IsOnGrid(req.Slot) {
		return fmt.Errorf("%w: slot %s", ErrSlotOffGrid, req.Slot)
	}

	return nil
}
