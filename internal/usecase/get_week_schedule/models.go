package get_week_schedule

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Request запрос недельного расписания работы ресторана
type Request struct {
	RestaurantID int64
}

// DaySchedule расписание работы на один день недели
type DaySchedule struct {
	Weekday   time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsClosed  bool
}

// Response недельное расписание: все семь дней, начиная с воскресенья.
// Дни без расписания отдаются закрытыми.
type Response struct {
	RestaurantID int64
	Days         []*DaySchedule
}
