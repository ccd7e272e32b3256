package get_restaurant_settings

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/service/settings/models"
)

type SettingsService interface {
	GetByRestaurant(ctx context.Context, restaurantID int64, userID int64) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
