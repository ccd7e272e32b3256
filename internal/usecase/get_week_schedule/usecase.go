package get_week_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	restaurantRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/restaurant"
)

// UseCase use case получения недельного расписания работы ресторана
type UseCase struct {
	scheduleRepo   ScheduleRepository
	restaurantRepo RestaurantRepository
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	restaurantRepo RestaurantRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:   scheduleRepo,
		restaurantRepo: restaurantRepo,
		logger:         logger,
	}
}

// Execute выполняет use case получения расписания.
// Ответ всегда содержит все семь дней недели: дни без записи
// в расписании отдаются как закрытые.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetWeekSchedule: restaurant=%d", req.RestaurantID)

	// 1. Валидация входных данных
	if req.RestaurantID <= 0 {
		return nil, fmt.Errorf("%w: restaurantId must be positive", ErrInvalidInput)
	}

	// 2. Ресторан существует
	if _, err := uc.restaurantRepo.GetByID(ctx, req.RestaurantID); err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			uc.logger.Warn("GetWeekSchedule: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("GetWeekSchedule: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}

	// 3. Расписание на неделю
	week, err := uc.scheduleRepo.GetWeek(ctx, req.RestaurantID)
	if err != nil {
		uc.logger.Error("GetWeekSchedule: failed to get week schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get week schedule: %v", ErrInternal, err)
	}

	// 4. Все семь дней, начиная с воскресенья
	days := make([]*DaySchedule, 0, 7)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		hours, ok := week[weekday]
		if !ok || hours.IsClosed {
			days = append(days, &DaySchedule{Weekday: weekday, IsClosed: true})
			continue
		}
		days = append(days, &DaySchedule{
			Weekday:   weekday,
			OpenTime:  hours.OpenTime,
			CloseTime: hours.CloseTime,
		})
	}

	uc.logger.Info("GetWeekSchedule: restaurant=%d, %d days with hours", req.RestaurantID, len(week))

	return &Response{
		RestaurantID: req.RestaurantID,
		Days:         days,
	}, nil
}
