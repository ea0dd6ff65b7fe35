package create_reservation

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда сотрудник не найден
	ErrSpecialistNotFound = errors.New("create_reservation: specialist not found")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrTimeSlotConflict возвращается, когда интервал пересекается
	// с другой бронью этого сотрудника
	ErrTimeSlotConflict = errors.New("create_reservation: time slot conflicts with another reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
