package get_restaurant_schedule

import (
	"strings"

	getWeekSchedule "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_week_schedule"
)

// DayScheduleResponse расписание работы на один день недели
type DayScheduleResponse struct {
	Weekday   string `json:"weekday"`             // воскресенье..суббота строчными: "sunday".."saturday"
	OpenTime  string `json:"openTime,omitempty"`  // "HH:MM", пусто для закрытых дней
	CloseTime string `json:"closeTime,omitempty"` // "HH:MM", пусто для закрытых дней
	IsClosed  bool   `json:"isClosed"`
}

// WeekScheduleResponse HTTP response model
type WeekScheduleResponse struct {
	RestaurantID int64                  `json:"restaurantId"`
	Schedule     []*DayScheduleResponse `json:"schedule"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getWeekSchedule.Response) *WeekScheduleResponse {
	days := make([]*DayScheduleResponse, 0, len(resp.Days))
	for _, day := range resp.Days {
		days = append(days, &DayScheduleResponse{
			Weekday:   strings.ToLower(day.Weekday.String()),
			OpenTime:  string(day.OpenTime),
			CloseTime: string(day.CloseTime),
			IsClosed:  day.IsClosed,
		})
	}

	return &WeekScheduleResponse{
		RestaurantID: resp.RestaurantID,
		Schedule:     days,
	}
}
