package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/infra/notify"
	"github.com/m04kA/SMC-RestaurantService/internal/realtime"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.TableReservation) (*domain.TableReservation, error)
	GetByTableAndDate(ctx context.Context, tableID int64, date time.Time) ([]*domain.TableReservation, error)
	CountActiveByUser(ctx context.Context, restaurantID int64, userID int64, statuses []domain.ReservationStatus, fromDate time.Time) (int, error)
}

// TableRepository интерфейс репозитория столиков
type TableRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
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

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс издателя событий бронирований (fire-and-forget)
type EventPublisher interface {
	Publish(ctx context.Context, event notify.ReservationEvent) error
}

// Broadcaster интерфейс realtime-рассылки изменений доступности
type Broadcaster interface {
	Broadcast(msg realtime.Message)
}

// AvailabilityInvalidator интерфейс инвалидации кэша карт доступности
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, tableID int64, date time.Time)
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
