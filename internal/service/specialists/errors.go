package specialists

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда сотрудник не найден
	ErrSpecialistNotFound = errors.New("specialist not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
