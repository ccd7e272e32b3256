package domain

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// OpeningHours расписание работы ресторана на один день недели.
// CloseTime <= OpenTime означает работу через полночь ("открыто до двух ночи").
type OpeningHours struct {
	ID           int64
	RestaurantID int64
	Weekday      time.Weekday
	OpenTime     types.TimeString
	CloseTime    types.TimeString
	IsClosed     bool
}

// SpansMidnight returns true if the schedule crosses midnight
func (h *OpeningHours) SpansMidnight() bool {
	return !h.CloseTime.IsAfter(h.OpenTime)
}

// IsOpenAt возвращает true, если ресторан открыт в момент t.
// Для обычного дня интервал [OpenTime, CloseTime] с включёнными границами,
// для дня через полночь — открыто при t >= OpenTime ИЛИ t <= CloseTime.
func (h *OpeningHours) IsOpenAt(t types.TimeString) bool {
	if h == nil || h.IsClosed {
		return false
	}
	if h.SpansMidnight() {
		return !t.IsBefore(h.OpenTime) || !t.IsAfter(h.CloseTime)
	}
	return !t.IsBefore(h.OpenTime) && !t.IsAfter(h.CloseTime)
}

// ContainsWindow проверяет, что всё окно [start, end] лежит внутри рабочих
// часов. Границы проверяются явно, а для надёжности при расписании через
// полночь — каждая минута окна.
func (h *OpeningHours) ContainsWindow(start, end types.TimeString) bool {
	if h == nil || h.IsClosed {
		return false
	}
	if !h.IsOpenAt(start) || !h.IsOpenAt(end) {
		return false
	}
	if !h.SpansMidnight() {
		return true
	}

	startMin, err := start.Minutes()
	if err != nil {
		return false
	}
	endMin, err := end.Minutes()
	if err != nil {
		return false
	}
	for m := startMin; m <= endMin; m++ {
		t, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return false
		}
		if !h.IsOpenAt(t) {
			return false
		}
	}
	return true
}

// WeekSchedule расписание ресторана на всю неделю.
// Отсутствие записи на день недели означает "закрыто" (fail-safe closed).
type WeekSchedule map[time.Weekday]*OpeningHours

// ForDate возвращает расписание на день недели указанной даты или nil
func (s WeekSchedule) ForDate(date time.Time) *OpeningHours {
	return s[date.Weekday()]
}

// IsOpenOn возвращает true, если ресторан открыт в момент t в указанную дату
func (s WeekSchedule) IsOpenOn(date time.Time, t types.TimeString) bool {
	return s.ForDate(date).IsOpenAt(t)
}
