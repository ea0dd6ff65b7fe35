package move_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("move_reservation: reservation not found")

	// ErrSpecialistNotFound возвращается, когда целевой сотрудник не найден
	ErrSpecialistNotFound = errors.New("move_reservation: specialist not found")

	// ErrSlotInPast возвращается, когда целевой слот уже в прошлом
	ErrSlotInPast = errors.New("move_reservation: target slot is in the past")

	// ErrSlotOffGrid возвращается, когда целевое время не лежит на сетке слотов
	ErrSlotOffGrid = errors.New("move_reservation: target slot is not on the schedule grid")

	// ErrTimeSlotConflict возвращается, когда целевой интервал пересекается
	// с другой бронью сотрудника
	ErrTimeSlotConflict = errors.New("move_reservation: time slot conflicts with another reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("move_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_reservation: internal error")
)
