package build_availability_map

import "errors"

var (
	// ErrTableNotFound столик не найден
	ErrTableNotFound = errors.New("table not found")

	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
