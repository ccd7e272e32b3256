package domain

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// ReservationStatus represents the status of a table reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// IsValid returns true if the status is one of the known values
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// allowedTransitions допустимые переходы статусов брони.
// Терминальные статусы (cancelled, completed) переходов не имеют.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// CanTransitionTo returns true if the transition from s to next is allowed
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TableReservation represents a booking of a specific table for a time window
// on a single date. Start and end times never cross midnight.
type TableReservation struct {
	ID           int64
	RestaurantID int64
	TableID      int64

	ReservationDate time.Time // дата без времени, UTC полночь
	StartTime       types.TimeString
	EndTime         types.TimeString
	NumberOfGuests  int

	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	UserID        *int64 // nil для гостевых броней без аккаунта
	Notes         *string

	Status ReservationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation occupies its table
// (only pending and confirmed reservations block the time window)
func (r *TableReservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal returns true if the reservation reached a final state
func (r *TableReservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}

// ConflictsWith возвращает true, если активная бронь r пересекается
// с окном [start, end) на ту же дату. Неактивные брони и бронь с
// excludeID (обновление самой себя) не считаются конфликтом.
func (r *TableReservation) ConflictsWith(start, end types.TimeString, excludeID *int64) bool {
	if !r.IsActive() {
		return false
	}
	if excludeID != nil && r.ID == *excludeID {
		return false
	}
	return Overlaps(r.StartTime, r.EndTime, start, end)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [s1,e1) и [s2,e2).
// Строгие неравенства: бронь, заканчивающаяся ровно в момент начала другой,
// пересечением не считается.
func Overlaps(s1, e1, s2, e2 types.TimeString) bool {
	return s1.IsBefore(e2) && s2.IsBefore(e1)
}

// ActiveStatuses список статусов, занимающих столик.
// Используется в SQL-фильтрах при проверке конфликтов.
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// ReservationsFilter фильтр для выборки бронирований ресторана
type ReservationsFilter struct {
	RestaurantID    int64              // Обязательный параметр
	TableID         *int64             // Фильтр по столику (опционально)
	Date            *time.Time         // Фильтр по дате (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и завершённые брони
}
