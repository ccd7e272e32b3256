package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/psqlbuilder"
)

var hoursColumns = []string{
	"id",
	"restaurant_id",
	"weekday",
	"open_time",
	"close_time",
	"is_closed",
}

// Repository репозиторий расписания работы ресторанов.
// Инвариант схемы: не больше одной записи на (ресторан, день недели).
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForDay получает расписание ресторана на день недели.
// Отсутствие записи — штатный случай: ресторан считается закрытым,
// вызывающий код получает ErrHoursNotFound.
func (r *Repository) GetForDay(ctx context.Context, restaurantID int64, weekday time.Weekday) (*domain.OpeningHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hoursColumns...).
		From("opening_hours").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForDay - build select query: %v", ErrBuildQuery, err)
	}

	var hours domain.OpeningHours
	var weekdayInt int

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hours.ID,
		&hours.RestaurantID,
		&weekdayInt,
		&hours.OpenTime,
		&hours.CloseTime,
		&hours.IsClosed,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDay - scan hours: %v", ErrScanRow, err)
	}

	hours.Weekday = time.Weekday(weekdayInt)

	return &hours, nil
}

// GetWeek получает расписание ресторана на всю неделю.
// Дни без записи в карту не попадают и трактуются как закрытые.
func (r *Repository) GetWeek(ctx context.Context, restaurantID int64) (domain.WeekSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hoursColumns...).
		From("opening_hours").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	week := make(domain.WeekSchedule)

	for rows.Next() {
		var hours domain.OpeningHours
		var weekdayInt int

		err := rows.Scan(
			&hours.ID,
			&hours.RestaurantID,
			&weekdayInt,
			&hours.OpenTime,
			&hours.CloseTime,
			&hours.IsClosed,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan row: %v", ErrScanRow, err)
		}

		hours.Weekday = time.Weekday(weekdayInt)
		week[hours.Weekday] = &hours
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}

	return week, nil
}
