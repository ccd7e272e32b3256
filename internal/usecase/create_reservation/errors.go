package create_reservation

import "errors"

var (
	// ErrRestaurantNotFound возвращается, когда ресторан не найден
	ErrRestaurantNotFound = errors.New("create_reservation: restaurant not found")

	// ErrRestaurantInactive возвращается, когда ресторан деактивирован
	ErrRestaurantInactive = errors.New("create_reservation: restaurant is not active")

	// ErrTableNotFound возвращается, когда столик не найден
	// или не принадлежит указанному ресторану
	ErrTableNotFound = errors.New("create_reservation: table not found in restaurant")

	// ErrInvalidPartySize возвращается, когда число гостей вне настроенных границ
	ErrInvalidPartySize = errors.New("create_reservation: party size is out of bounds")

	// ErrPartyExceedsCapacity возвращается, когда гостей больше вместимости столика
	ErrPartyExceedsCapacity = errors.New("create_reservation: party size exceeds table capacity")

	// ErrInvalidTimeRange возвращается, когда конец окна не позже начала
	ErrInvalidTimeRange = errors.New("create_reservation: end time must be after start time")

	// ErrInvalidDuration возвращается, когда длительность вне настроенных границ
	ErrInvalidDuration = errors.New("create_reservation: reservation duration is out of bounds")

	// ErrOutsideOpeningHours возвращается, когда окно не помещается в рабочие часы
	ErrOutsideOpeningHours = errors.New("create_reservation: requested window is outside opening hours")

	// ErrOutsideBookingWindow возвращается, когда дата нарушает окно
	// заблаговременного бронирования
	ErrOutsideBookingWindow = errors.New("create_reservation: date is outside the advance booking window")

	// ErrUserLimitExceeded возвращается при превышении лимита активных броней пользователя
	ErrUserLimitExceeded = errors.New("create_reservation: user reservations limit exceeded")

	// ErrTableNotAvailable возвращается, когда окно пересекается с активной бронью.
	// Возвращается и при late-конфликте на коммите после успешного поиска.
	ErrTableNotAvailable = errors.New("create_reservation: table is not available for this window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
