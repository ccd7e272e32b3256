package find_available_tables

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if req.PartySize <= 0 {
		return fmt.Errorf("%w: partySize must be positive", ErrInvalidInput)
	}
	return nil
}

// validateTimeRange проверяет, что начало строго раньше окончания
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

// validateAdvanceWindow проверяет, что начало окна попадает в окно
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

// normalizeDate обнуляет время, оставляя только дату (UTC)
func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
