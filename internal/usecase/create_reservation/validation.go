package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantID must be positive", ErrInvalidInput)
	}

	if req.TableID <= 0 {
		return fmt.Errorf("%w: tableID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if req.NumberOfGuests <= 0 {
		return fmt.Errorf("%w: numberOfGuests must be positive", ErrInvalidInput)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	if len(req.CustomerPhone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customerPhone is too long", ErrInvalidInput)
	}

	if len(req.CustomerEmail) > domain.MaxCustomerEmailLength {
		return fmt.Errorf("%w: customerEmail is too long", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateTimeRange проверяет, что окно корректно: начало строго раньше конца.
// Брони через полночь в этой модели не поддерживаются.
func validateTimeRange(start, end types.TimeString) error {
	if !start.IsBefore(end) {
		return ErrInvalidTimeRange
	}
	return nil
}

// validateDuration проверяет длительность окна по настройкам ресторана
func validateDuration(start, end types.TimeString, settings *domain.RestaurantSettings) error {
	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	endMin, err := end.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	duration := endMin - startMin
	if duration < settings.MinReservationDurationMinutes {
		return fmt.Errorf("%w: minimum duration is %d minutes", ErrInvalidDuration, settings.MinReservationDurationMinutes)
	}
	if duration > settings.MaxReservationDurationMinutes {
		return fmt.Errorf("%w: maximum duration is %d minutes", ErrInvalidDuration, settings.MaxReservationDurationMinutes)
	}

	return nil
}

// validateAdvanceWindow проверяет, что начало брони попадает в окно
// заблаговременного бронирования [now+MinAdvance, now+MaxAdvanceDays]
func validateAdvanceWindow(date time.Time, start types.TimeString, now time.Time, settings *domain.RestaurantSettings) error {
	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	startAt := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(startMin) * time.Minute)
	nowUTC := now.UTC()

	earliest := nowUTC.Add(time.Duration(settings.MinAdvanceBookingMinutes) * time.Minute)
	if startAt.Before(earliest) {
		return fmt.Errorf("%w: must book at least %d minutes in advance",
			ErrOutsideBookingWindow, settings.MinAdvanceBookingMinutes)
	}

	if settings.HasMaxAdvanceLimit() {
		latest := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, settings.MaxAdvanceBookingDays+1)
		if !startAt.Before(latest) {
			return fmt.Errorf("%w: can only book %d days in advance",
				ErrOutsideBookingWindow, settings.MaxAdvanceBookingDays)
		}
	}

	return nil
}

// validateGuests проверяет число гостей по настройкам ресторана и вместимости столика
func validateGuests(guests int, table *domain.Table, settings *domain.RestaurantSettings) error {
	if guests < settings.MinGuestsPerReservation {
		return fmt.Errorf("%w: minimum party size is %d", ErrInvalidPartySize, settings.MinGuestsPerReservation)
	}
	if guests > settings.MaxGuestsPerReservation {
		return fmt.Errorf("%w: maximum party size is %d", ErrInvalidPartySize, settings.MaxGuestsPerReservation)
	}
	if !table.Fits(guests) {
		return fmt.Errorf("%w: table %d seats %d", ErrPartyExceedsCapacity, table.TableNumber, table.Capacity)
	}
	return nil
}

// hasConflict проверяет пересечение окна с активными бронями столика
func hasConflict(reservations []*domain.TableReservation, start, end types.TimeString) bool {
	for _, res := range reservations {
		if res.ConflictsWith(start, end, nil) {
			return true
		}
	}
	return false
}

// normalizeDate обнуляет время даты брони (UTC полночь)
func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
