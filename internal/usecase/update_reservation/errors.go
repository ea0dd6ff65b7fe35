package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrSpecialistNotFound возвращается, когда сотрудник не найден
	ErrSpecialistNotFound = errors.New("update_reservation: specialist not found")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена
	ErrServiceNotFound = errors.New("update_reservation: service not found")

	// ErrTimeSlotConflict возвращается, когда интервал пересекается
	// с другой бронью этого сотрудника
	ErrTimeSlotConflict = errors.New("update_reservation: time slot conflicts with another reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
