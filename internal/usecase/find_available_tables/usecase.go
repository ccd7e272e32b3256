package find_available_tables

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	restaurantRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/restaurant"
	scheduleRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-RestaurantService/pkg/ptr"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// UseCase use case подбора свободных столиков под запрошенное окно
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	restaurantRepo  RestaurantRepository
	settingsRepo    SettingsRepository
	scheduleRepo    ScheduleRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	restaurantRepo RestaurantRepository,
	settingsRepo SettingsRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		restaurantRepo:  restaurantRepo,
		settingsRepo:    settingsRepo,
		scheduleRepo:    scheduleRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case поиска свободных столиков.
// Чтение без транзакции: результат — рекомендация, авторитетная
// проверка конфликтов происходит при создании брони.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindAvailableTables: restaurant=%d, date=%s, window=%s-%s, party=%d",
		req.RestaurantID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindAvailableTables: validation failed: %v", err)
		return nil, err
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("FindAvailableTables: invalid time range %s-%s", req.StartTime, req.EndTime)
		return nil, err
	}

	date := normalizeDate(req.Date)

	// 2. Ресторан существует и активен
	restaurant, err := uc.restaurantRepo.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			uc.logger.Warn("FindAvailableTables: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("FindAvailableTables: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}
	if !restaurant.IsActive {
		uc.logger.Warn("FindAvailableTables: restaurant id=%d is inactive", req.RestaurantID)
		return nil, ErrRestaurantInactive
	}

	// 3. Длительность и окно заблаговременного бронирования по настройкам:
	// искать имеет смысл только окна, которые потом можно забронировать
	settings, err := uc.settingsRepo.GetByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("FindAvailableTables: failed to get settings for restaurant id=%d: %v", req.RestaurantID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings(req.RestaurantID)
	}

	if err := validateDuration(req.StartTime, req.EndTime, settings); err != nil {
		uc.logger.Warn("FindAvailableTables: duration validation failed: %v", err)
		return nil, err
	}
	if err := validateAdvanceWindow(date, req.StartTime, uc.timeProvider.Now(), settings); err != nil {
		uc.logger.Warn("FindAvailableTables: advance window validation failed: %v", err)
		return nil, err
	}

	// 4. Окно внутри рабочих часов; нет расписания на день — закрыто
	hours, err := uc.scheduleRepo.GetForDay(ctx, req.RestaurantID, date.Weekday())
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrHoursNotFound) {
			uc.logger.Info("FindAvailableTables: restaurant=%d closed on %s", req.RestaurantID, date.Weekday())
			return nil, ErrOutsideOpeningHours
		}
		uc.logger.Error("FindAvailableTables: failed to get opening hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
	}
	if !hours.ContainsWindow(req.StartTime, req.EndTime) {
		uc.logger.Warn("FindAvailableTables: window %s-%s outside opening hours %s-%s",
			req.StartTime, req.EndTime, hours.OpenTime, hours.CloseTime)
		return nil, ErrOutsideOpeningHours
	}

	// 5. Столики с достаточной вместимостью,
	// уже отсортированные по вместимости и номеру
	tables, err := uc.tableRepo.GetByRestaurant(ctx, req.RestaurantID, ptr.Ptr(req.PartySize))
	if err != nil {
		uc.logger.Error("FindAvailableTables: failed to get tables: %v", err)
		return nil, fmt.Errorf("%w: failed to get tables: %v", ErrInternal, err)
	}

	if len(tables) == 0 {
		uc.logger.Info("FindAvailableTables: no tables fit party=%d in restaurant=%d",
			req.PartySize, req.RestaurantID)
		return uc.buildResponse(req, date, nil), nil
	}

	// 6. Активные брони ресторана на дату, одним запросом на все столики
	reservations, err := uc.reservationRepo.GetByRestaurantWithFilter(ctx, domain.ReservationsFilter{
		RestaurantID: req.RestaurantID,
		Date:         ptr.Ptr(date),
	})
	if err != nil {
		uc.logger.Error("FindAvailableTables: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 7. Отсеиваем столики с пересечением окна, порядок сортировки сохраняется
	available := filterAvailable(tables, reservations, req.StartTime, req.EndTime)

	uc.logger.Info("FindAvailableTables: %d of %d tables available in restaurant=%d",
		len(available), len(tables), req.RestaurantID)

	return uc.buildResponse(req, date, available), nil
}

// filterAvailable оставляет столики без активных броней, пересекающих окно [start, end)
func filterAvailable(
	tables []*domain.Table,
	reservations []*domain.TableReservation,
	start, end types.TimeString,
) []*domain.Table {
	byTable := make(map[int64][]*domain.TableReservation, len(tables))
	for _, res := range reservations {
		byTable[res.TableID] = append(byTable[res.TableID], res)
	}

	available := make([]*domain.Table, 0, len(tables))
	for _, table := range tables {
		if !hasConflict(byTable[table.ID], start, end) {
			available = append(available, table)
		}
	}
	return available
}

// hasConflict возвращает true, если хотя бы одна активная бронь пересекает окно
func hasConflict(reservations []*domain.TableReservation, start, end types.TimeString) bool {
	for _, res := range reservations {
		if res.ConflictsWith(start, end, nil) {
			return true
		}
	}
	return false
}

func (uc *UseCase) buildResponse(req *Request, date time.Time, tables []*domain.Table) *Response {
	result := make([]AvailableTable, 0, len(tables))
	for _, t := range tables {
		result = append(result, AvailableTable{
			TableID:     t.ID,
			TableNumber: t.TableNumber,
			Capacity:    t.Capacity,
		})
	}
	return &Response{
		RestaurantID: req.RestaurantID,
		Date:         date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		PartySize:    req.PartySize,
		Tables:       result,
	}
}
