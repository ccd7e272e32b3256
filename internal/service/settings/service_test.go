package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/ptr"
)

const (
	ownerID    = int64(100)
	strangerID = int64(777)
)

type fakeSettingsRepo struct {
	settings *domain.RestaurantSettings
}

func (f *fakeSettingsRepo) GetByRestaurant(_ context.Context, _ int64) (*domain.RestaurantSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	copied := *f.settings
	return &copied, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s *domain.RestaurantSettings) (*domain.RestaurantSettings, error) {
	copied := *s
	copied.UpdatedAt = time.Now()
	f.settings = &copied
	return &copied, nil
}

type fakeRestaurantRepo struct {
	restaurant *domain.Restaurant
}

func (f *fakeRestaurantRepo) GetByID(_ context.Context, _ int64) (*domain.Restaurant, error) {
	return f.restaurant, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeSettingsRepo) *Service {
	return NewService(
		repo,
		&fakeRestaurantRepo{restaurant: &domain.Restaurant{ID: 1, OwnerUserID: ownerID, IsActive: true}},
		noopLogger{},
	)
}

func TestGetByRestaurant(t *testing.T) {
	ctx := context.Background()

	stored := domain.DefaultSettings(1)
	stored.MaxGuestsPerReservation = 12
	svc := newService(&fakeSettingsRepo{settings: stored})

	resp, err := svc.GetByRestaurant(ctx, 1, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.MaxGuestsPerReservation)

	// Только владелец ресторана
	_, err = svc.GetByRestaurant(ctx, 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByRestaurant_MissingRowFallsBackToDefaults(t *testing.T) {
	svc := newService(&fakeSettingsRepo{})

	resp, err := svc.GetByRestaurant(context.Background(), 1, ownerID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMaxGuestsPerReservation, resp.MaxGuestsPerReservation)
	assert.Equal(t, domain.DefaultReservationsNeedConfirmation, resp.ReservationsNeedConfirmation)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := &fakeSettingsRepo{settings: domain.DefaultSettings(1)}
	svc := newService(repo)

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:                   ownerID,
		RestaurantID:             1,
		MaxGuestsPerReservation:  ptr.Ptr(10),
		ReservationsPerUserLimit: ptr.Ptr(3),
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.MaxGuestsPerReservation)
	assert.Equal(t, 3, resp.ReservationsPerUserLimit)
	// Неуказанные поля не изменились
	assert.Equal(t, domain.DefaultMinReservationDurationMinutes, resp.MinReservationDurationMinutes)
	assert.Equal(t, domain.DefaultReservationsNeedConfirmation, resp.ReservationsNeedConfirmation)
}

func TestUpdate_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newService(&fakeSettingsRepo{settings: domain.DefaultSettings(1)})

	// max < min по длительности
	_, err := svc.Update(ctx, &models.UpdateSettingsRequest{
		UserID:                        ownerID,
		RestaurantID:                  1,
		MaxReservationDurationMinutes: ptr.Ptr(15),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// max < min по гостям
	_, err = svc.Update(ctx, &models.UpdateSettingsRequest{
		UserID:                  ownerID,
		RestaurantID:            1,
		MinGuestsPerReservation: ptr.Ptr(5),
		MaxGuestsPerReservation: ptr.Ptr(2),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Отрицательный лимит
	_, err = svc.Update(ctx, &models.UpdateSettingsRequest{
		UserID:                   ownerID,
		RestaurantID:             1,
		ReservationsPerUserLimit: ptr.Ptr(-1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	svc := newService(&fakeSettingsRepo{settings: domain.DefaultSettings(1)})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:                  strangerID,
		RestaurantID:            1,
		MaxGuestsPerReservation: ptr.Ptr(10),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
