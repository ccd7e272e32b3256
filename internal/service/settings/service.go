package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	restaurantRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/restaurant"
	settingsRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings/models"
)

// Service сервис для работы с настройками бронирования ресторана
type Service struct {
	settingsRepo   SettingsRepository
	restaurantRepo RestaurantRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	restaurantRepo RestaurantRepository,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo:   settingsRepo,
		restaurantRepo: restaurantRepo,
		logger:         logger,
	}
}

// GetByRestaurant получает настройки бронирования ресторана
// Доступно только владельцу ресторана
func (s *Service) GetByRestaurant(ctx context.Context, restaurantID int64, userID int64) (*models.SettingsResponse, error) {
	s.logger.Info("GetByRestaurant: fetching settings for restaurant=%d by user=%d", restaurantID, userID)

	if err := s.checkOwnerAccess(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	current, err := s.settingsRepo.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			// Настройки создаются вместе с рестораном; отсутствие строки
			// покрываем дефолтами, как это делает создание брони
			s.logger.Warn("GetByRestaurant: using default settings for restaurant=%d", restaurantID)
			return models.FromDomainSettings(domain.DefaultSettings(restaurantID)), nil
		}
		s.logger.Error("GetByRestaurant: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: GetByRestaurant - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByRestaurant: successfully fetched settings for restaurant=%d", restaurantID)
	return models.FromDomainSettings(current), nil
}

// Update обновляет настройки бронирования ресторана
// Доступно только владельцу ресторана; неуказанные поля не меняются
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for restaurant=%d by user=%d", req.RestaurantID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.RestaurantID, req.UserID); err != nil {
		return nil, err
	}

	current, err := s.settingsRepo.GetByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Update: repository error for restaurant=%d: %v", req.RestaurantID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		current = domain.DefaultSettings(req.RestaurantID)
	}

	req.ApplyTo(current)

	if err := s.validateSettings(current); err != nil {
		s.logger.Warn("Update: validation failed for restaurant=%d: %v", req.RestaurantID, err)
		return nil, err
	}

	updated, err := s.settingsRepo.Update(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error for restaurant=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for restaurant=%d", req.RestaurantID)
	return models.FromDomainSettings(updated), nil
}

// Вспомогательные методы

// validateSettings проверяет согласованность границ настроек
func (s *Service) validateSettings(settings *domain.RestaurantSettings) error {
	if settings.MinReservationDurationMinutes <= 0 {
		return fmt.Errorf("%w: minReservationDurationMinutes must be positive", ErrInvalidInput)
	}
	if settings.MaxReservationDurationMinutes < settings.MinReservationDurationMinutes {
		return fmt.Errorf("%w: maxReservationDurationMinutes must be >= min", ErrInvalidInput)
	}
	if settings.MinAdvanceBookingMinutes < 0 {
		return fmt.Errorf("%w: minAdvanceBookingMinutes must not be negative", ErrInvalidInput)
	}
	if settings.MaxAdvanceBookingDays < 0 {
		return fmt.Errorf("%w: maxAdvanceBookingDays must not be negative", ErrInvalidInput)
	}
	if settings.MinGuestsPerReservation <= 0 {
		return fmt.Errorf("%w: minGuestsPerReservation must be positive", ErrInvalidInput)
	}
	if settings.MaxGuestsPerReservation < settings.MinGuestsPerReservation {
		return fmt.Errorf("%w: maxGuestsPerReservation must be >= min", ErrInvalidInput)
	}
	if settings.ReservationsPerUserLimit < 0 {
		return fmt.Errorf("%w: reservationsPerUserLimit must not be negative", ErrInvalidInput)
	}
	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем ресторана
func (s *Service) checkOwnerAccess(ctx context.Context, restaurantID int64, userID int64) error {
	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			s.logger.Warn("checkOwnerAccess: restaurant id=%d not found", restaurantID)
			return ErrRestaurantNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get restaurant id=%d: %v", restaurantID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get restaurant: %v", ErrInternal, err)
	}

	if restaurant.OwnerUserID == userID {
		return nil
	}

	s.logger.Warn("checkOwnerAccess: user=%d is not the owner of restaurant=%d", userID, restaurantID)
	return ErrAccessDenied
}
