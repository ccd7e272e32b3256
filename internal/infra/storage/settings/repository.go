package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/psqlbuilder"
)

var settingsColumns = []string{
	"restaurant_id",
	"reservations_need_confirmation",
	"min_reservation_duration_minutes",
	"max_reservation_duration_minutes",
	"min_advance_booking_minutes",
	"max_advance_booking_days",
	"min_guests_per_reservation",
	"max_guests_per_reservation",
	"reservations_per_user_limit",
	"limit_counts_pending",
	"created_at",
	"updated_at",
}

// Repository репозиторий настроек бронирования ресторанов (1:1 с рестораном)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByRestaurant получает настройки бронирования ресторана
func (r *Repository) GetByRestaurant(ctx context.Context, restaurantID int64) (*domain.RestaurantSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("restaurant_settings").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRestaurant - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.RestaurantSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.RestaurantID,
		&s.ReservationsNeedConfirmation,
		&s.MinReservationDurationMinutes,
		&s.MaxReservationDurationMinutes,
		&s.MinAdvanceBookingMinutes,
		&s.MaxAdvanceBookingDays,
		&s.MinGuestsPerReservation,
		&s.MaxGuestsPerReservation,
		&s.ReservationsPerUserLimit,
		&s.LimitCountsPending,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRestaurant - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Update обновляет настройки бронирования ресторана
func (r *Repository) Update(ctx context.Context, s *domain.RestaurantSettings) (*domain.RestaurantSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("restaurant_settings").
		Set("reservations_need_confirmation", s.ReservationsNeedConfirmation).
		Set("min_reservation_duration_minutes", s.MinReservationDurationMinutes).
		Set("max_reservation_duration_minutes", s.MaxReservationDurationMinutes).
		Set("min_advance_booking_minutes", s.MinAdvanceBookingMinutes).
		Set("max_advance_booking_days", s.MaxAdvanceBookingDays).
		Set("min_guests_per_reservation", s.MinGuestsPerReservation).
		Set("max_guests_per_reservation", s.MaxGuestsPerReservation).
		Set("reservations_per_user_limit", s.ReservationsPerUserLimit).
		Set("limit_counts_pending", s.LimitCountsPending).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"restaurant_id": s.RestaurantID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
