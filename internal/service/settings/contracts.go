package settings

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByRestaurant(ctx context.Context, restaurantID int64) (*domain.RestaurantSettings, error)
	Update(ctx context.Context, s *domain.RestaurantSettings) (*domain.RestaurantSettings, error)
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
