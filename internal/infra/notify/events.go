package notify

import "time"

// Типы событий, публикуемых в очередь уведомлений
const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
	EventReservationDeleted       = "reservation.deleted"
)

// ReservationEvent событие изменения бронирования для внешних потребителей
// (рассылка писем, push-уведомления персоналу)
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservationId"`
	RestaurantID  int64     `json:"restaurantId"`
	TableID       int64     `json:"tableId"`
	Date          string    `json:"date"`      // YYYY-MM-DD
	StartTime     string    `json:"startTime"` // HH:MM
	EndTime       string    `json:"endTime"`   // HH:MM
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}
