package find_available_tables

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByRestaurantWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.TableReservation, error)
}

// TableRepository интерфейс репозитория столиков
type TableRepository interface {
	GetByRestaurant(ctx context.Context, restaurantID int64, minCapacity *int) ([]*domain.Table, error)
}

// RestaurantRepository интерфейс репозитория ресторанов
type RestaurantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
}

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByRestaurant(ctx context.Context, restaurantID int64) (*domain.RestaurantSettings, error)
}

// ScheduleRepository интерфейс репозитория расписания работы
type ScheduleRepository interface {
	GetForDay(ctx context.Context, restaurantID int64, weekday time.Weekday) (*domain.OpeningHours, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
