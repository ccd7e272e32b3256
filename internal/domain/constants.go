package domain

// Default restaurant settings
const (
	DefaultReservationsNeedConfirmation  = true
	DefaultMinReservationDurationMinutes = 30
	DefaultMaxReservationDurationMinutes = 240 // 4 часа
	DefaultMinAdvanceBookingMinutes      = 60  // 1 час
	DefaultMaxAdvanceBookingDays         = 90
	DefaultMinGuestsPerReservation       = 1
	DefaultMaxGuestsPerReservation       = 20
	DefaultReservationsPerUserLimit      = 0 // без ограничения
	DefaultLimitCountsPending            = true
)

// Business validation constants
const (
	MaxNotesLength         = 500
	MaxCustomerNameLength  = 200
	MaxCustomerPhoneLength = 32
	MaxCustomerEmailLength = 254
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
