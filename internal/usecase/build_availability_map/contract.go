package build_availability_map

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByTableAndDate(ctx context.Context, tableID int64, date time.Time) ([]*domain.TableReservation, error)
}

// TableRepository интерфейс репозитория столиков
type TableRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
}

// ScheduleRepository интерфейс репозитория расписания работы
type ScheduleRepository interface {
	GetForDay(ctx context.Context, restaurantID int64, weekday time.Weekday) (*domain.OpeningHours, error)
}

// MapCache интерфейс кэша готовых карт доступности
type MapCache interface {
	Get(ctx context.Context, tableID int64, date time.Time) (string, error)
	Set(ctx context.Context, tableID int64, date time.Time, availabilityMap string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
