package domain

import "time"

// RestaurantSettings политики бронирования ресторана, один к одному с рестораном.
// Создаются с дефолтами при создании ресторана, меняются владельцем.
type RestaurantSettings struct {
	RestaurantID int64

	// ReservationsNeedConfirmation определяет начальный статус новой брони:
	// true -> pending (подтверждает персонал), false -> confirmed сразу
	ReservationsNeedConfirmation bool

	MinReservationDurationMinutes int
	MaxReservationDurationMinutes int

	// Окно заблаговременного бронирования: бронь должна начинаться
	// не раньше now+MinAdvance и не позже now+MaxAdvance
	MinAdvanceBookingMinutes int
	MaxAdvanceBookingDays    int // 0 = без ограничения

	MinGuestsPerReservation int
	MaxGuestsPerReservation int

	// ReservationsPerUserLimit максимум активных броней пользователя
	// в этом ресторане, 0 = без ограничения
	ReservationsPerUserLimit int
	// LimitCountsPending определяет, какие брони считать в лимит:
	// true -> pending + confirmed, false -> только confirmed
	LimitCountsPending bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InitialStatus возвращает статус новой брони согласно политике ресторана
func (s *RestaurantSettings) InitialStatus() ReservationStatus {
	if s.ReservationsNeedConfirmation {
		return StatusPending
	}
	return StatusConfirmed
}

// HasUserLimit возвращает true, если лимит броней на пользователя включён
func (s *RestaurantSettings) HasUserLimit() bool {
	return s.ReservationsPerUserLimit > 0
}

// HasMaxAdvanceLimit возвращает true, если ограничена дальняя граница бронирования
func (s *RestaurantSettings) HasMaxAdvanceLimit() bool {
	return s.MaxAdvanceBookingDays > 0
}

// LimitedStatuses статусы, которые учитываются в лимите броней пользователя
func (s *RestaurantSettings) LimitedStatuses() []ReservationStatus {
	if s.LimitCountsPending {
		return []ReservationStatus{StatusPending, StatusConfirmed}
	}
	return []ReservationStatus{StatusConfirmed}
}

// DefaultSettings настройки, присваиваемые ресторану при создании
func DefaultSettings(restaurantID int64) *RestaurantSettings {
	return &RestaurantSettings{
		RestaurantID:                  restaurantID,
		ReservationsNeedConfirmation:  DefaultReservationsNeedConfirmation,
		MinReservationDurationMinutes: DefaultMinReservationDurationMinutes,
		MaxReservationDurationMinutes: DefaultMaxReservationDurationMinutes,
		MinAdvanceBookingMinutes:      DefaultMinAdvanceBookingMinutes,
		MaxAdvanceBookingDays:         DefaultMaxAdvanceBookingDays,
		MinGuestsPerReservation:       DefaultMinGuestsPerReservation,
		MaxGuestsPerReservation:       DefaultMaxGuestsPerReservation,
		ReservationsPerUserLimit:      DefaultReservationsPerUserLimit,
		LimitCountsPending:            DefaultLimitCountsPending,
	}
}
