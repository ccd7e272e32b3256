package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/infra/notify"
	"github.com/m04kA/SMC-RestaurantService/internal/realtime"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TableReservation, error)
	GetByRestaurantWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.TableReservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

// RestaurantRepository интерфейс репозитория ресторанов
type RestaurantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
