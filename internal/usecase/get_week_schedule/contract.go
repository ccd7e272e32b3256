package get_week_schedule

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания работы
type ScheduleRepository interface {
	GetWeek(ctx context.Context, restaurantID int64) (domain.WeekSchedule, error)
}

// RestaurantRepository интерфейс репозитория ресторанов
type RestaurantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
