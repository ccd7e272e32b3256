package build_availability_map

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/schedule"
	tableRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/table"
)

// UseCase use case построения суточной карты доступности столика
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	scheduleRepo    ScheduleRepository
	cache           MapCache // опционально, nil = кэширование выключено
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	scheduleRepo ScheduleRepository,
	cache MapCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		scheduleRepo:    scheduleRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Execute выполняет use case построения карты доступности.
// Построение детерминировано: одни и те же входные данные дают одну
// и ту же карту, поэтому результат безопасно кэшируется до первой
// инвалидации при изменении броней.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BuildAvailabilityMap: table=%d, date=%s",
		req.TableID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.TableID <= 0 {
		return nil, fmt.Errorf("%w: tableId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := normalizeDate(req.Date)

	// 2. Столик существует
	table, err := uc.tableRepo.GetByID(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			uc.logger.Warn("BuildAvailabilityMap: table id=%d not found", req.TableID)
			return nil, ErrTableNotFound
		}
		uc.logger.Error("BuildAvailabilityMap: failed to get table id=%d: %v", req.TableID, err)
		return nil, fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
	}

	// 3. Готовая карта из кэша
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, req.TableID, date); err == nil {
			uc.logger.Info("BuildAvailabilityMap: cache hit for table=%d date=%s",
				req.TableID, date.Format(domain.DateFormat))
			return uc.buildResponse(table, date, cached), nil
		}
	}

	// 4. Рабочие часы на день; нет записи — ресторан закрыт, карта пустая
	hours, err := uc.scheduleRepo.GetForDay(ctx, table.RestaurantID, date.Weekday())
	if err != nil && !errors.Is(err, scheduleRepo.ErrHoursNotFound) {
		uc.logger.Error("BuildAvailabilityMap: failed to get opening hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
	}

	// 5. Брони столика на дату (неактивные отфильтруются при построении)
	reservations, err := uc.reservationRepo.GetByTableAndDate(ctx, req.TableID, date)
	if err != nil {
		uc.logger.Error("BuildAvailabilityMap: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Построение карты и запись в кэш
	availabilityMap := domain.BuildDailyMap(hours, reservations)

	if uc.cache != nil {
		uc.cache.Set(ctx, req.TableID, date, availabilityMap)
	}

	uc.logger.Info("BuildAvailabilityMap: built map for table=%d date=%s from %d reservations",
		req.TableID, date.Format(domain.DateFormat), len(reservations))

	return uc.buildResponse(table, date, availabilityMap), nil
}

func (uc *UseCase) buildResponse(table *domain.Table, date time.Time, availabilityMap string) *Response {
	return &Response{
		TableID:         table.ID,
		RestaurantID:    table.RestaurantID,
		Date:            date,
		AvailabilityMap: availabilityMap,
	}
}

// normalizeDate обнуляет время, оставляя только дату (UTC)
func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
