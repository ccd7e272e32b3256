package find_available_tables

import "errors"

var (
	// ErrRestaurantNotFound ресторан не найден
	ErrRestaurantNotFound = errors.New("restaurant not found")

	// ErrRestaurantInactive ресторан деактивирован и не принимает брони
	ErrRestaurantInactive = errors.New("restaurant is inactive")

	// ErrInvalidTimeRange время начала не раньше времени окончания
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidDuration длительность окна вне настроенных границ
	ErrInvalidDuration = errors.New("requested duration is out of bounds")

	// ErrOutsideBookingWindow дата вне окна заблаговременного бронирования
	ErrOutsideBookingWindow = errors.New("date is outside the advance booking window")

	// ErrOutsideOpeningHours запрошенное окно вне рабочих часов ресторана
	ErrOutsideOpeningHours = errors.New("requested window is outside opening hours")

	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
