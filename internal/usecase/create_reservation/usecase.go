package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/infra/notify"
	restaurantRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/restaurant"
	scheduleRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/settings"
	tableRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/table"
	"github.com/m04kA/SMC-RestaurantService/internal/realtime"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
)

// notifyTimeout таймаут фоновой доставки уведомлений после коммита
const notifyTimeout = 5 * time.Second

// UseCase use case создания брони столика
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	restaurantRepo  RestaurantRepository
	settingsRepo    SettingsRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	publisher       EventPublisher          // опционально, nil = выключено
	broadcaster     Broadcaster             // опционально, nil = выключено
	cache           AvailabilityInvalidator // опционально, nil = выключено
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
	txManager TransactionManager,
	publisher EventPublisher,
	broadcaster Broadcaster,
	cache AvailabilityInvalidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		restaurantRepo:  restaurantRepo,
		settingsRepo:    settingsRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		publisher:       publisher,
		broadcaster:     broadcaster,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони.
// Пайплайн fail-fast: первая неудавшаяся проверка решает исход.
// Проверка конфликтов и вставка выполняются в одной сериализуемой
// транзакции с блокировкой броней столика на дату — результаты поиска
// к этому моменту могли устареть.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: restaurant=%d, table=%d, date=%s, window=%s-%s, guests=%d",
		req.RestaurantID, req.TableID, req.Date.Format(domain.DateFormat),
		req.StartTime, req.EndTime, req.NumberOfGuests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateReservation: invalid time range %s-%s", req.StartTime, req.EndTime)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := normalizeDate(req.Date)

	// 2. Ресторан существует и активен
	restaurant, err := uc.restaurantRepo.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			uc.logger.Warn("CreateReservation: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("CreateReservation: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}
	if !restaurant.IsActive {
		uc.logger.Warn("CreateReservation: restaurant id=%d is inactive", req.RestaurantID)
		return nil, ErrRestaurantInactive
	}

	// 3. Столик существует и принадлежит ресторану
	table, err := uc.tableRepo.GetByID(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			uc.logger.Warn("CreateReservation: table id=%d not found", req.TableID)
			return nil, ErrTableNotFound
		}
		uc.logger.Error("CreateReservation: failed to get table id=%d: %v", req.TableID, err)
		return nil, fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
	}
	if table.RestaurantID != req.RestaurantID {
		uc.logger.Warn("CreateReservation: table id=%d does not belong to restaurant id=%d",
			req.TableID, req.RestaurantID)
		return nil, ErrTableNotFound
	}

	// 4. Настройки бронирования ресторана (создаются вместе с рестораном;
	// отсутствие строки — деградация данных, подставляем дефолты)
	settings, err := uc.settingsRepo.GetByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("CreateReservation: failed to get settings for restaurant id=%d: %v", req.RestaurantID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings(req.RestaurantID)
		uc.logger.Warn("CreateReservation: using default settings for restaurant=%d", req.RestaurantID)
	}

	// 5. Число гостей в границах настроек и вместимости столика
	if err := validateGuests(req.NumberOfGuests, table, settings); err != nil {
		uc.logger.Warn("CreateReservation: guests validation failed: %v", err)
		return nil, err
	}

	// 6. Длительность и окно заблаговременного бронирования
	if err := validateDuration(req.StartTime, req.EndTime, settings); err != nil {
		uc.logger.Warn("CreateReservation: duration validation failed: %v", err)
		return nil, err
	}
	if err := validateAdvanceWindow(date, req.StartTime, now, settings); err != nil {
		uc.logger.Warn("CreateReservation: advance window validation failed: %v", err)
		return nil, err
	}

	// 7. Окно целиком внутри рабочих часов.
	// Нет записи расписания на день — ресторан закрыт (fail-safe closed).
	hours, err := uc.scheduleRepo.GetForDay(ctx, req.RestaurantID, date.Weekday())
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrHoursNotFound) {
			uc.logger.Warn("CreateReservation: no opening hours for restaurant=%d on %s",
				req.RestaurantID, date.Weekday())
			return nil, ErrOutsideOpeningHours
		}
		uc.logger.Error("CreateReservation: failed to get opening hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
	}
	if !hours.ContainsWindow(req.StartTime, req.EndTime) {
		uc.logger.Warn("CreateReservation: window %s-%s outside opening hours %s-%s",
			req.StartTime, req.EndTime, hours.OpenTime, hours.CloseTime)
		return nil, ErrOutsideOpeningHours
	}

	var result *domain.TableReservation

	// 8. Проверка конфликтов и вставка — одна атомарная единица работы.
	// Ошибки репозитория внутри транзакции оборачиваются с сохранением
	// цепочки: serialization_failure должен дойти до менеджера транзакций.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Лимит активных броней пользователя в ресторане
		if req.UserID != nil && settings.HasUserLimit() {
			count, err := uc.reservationRepo.CountActiveByUser(
				txCtx, req.RestaurantID, *req.UserID, settings.LimitedStatuses(), normalizeDate(now))
			if err != nil {
				uc.logger.Error("CreateReservation: failed to count user reservations: %v", err)
				return fmt.Errorf("%w: failed to count user reservations: %w", ErrInternal, err)
			}
			if count >= settings.ReservationsPerUserLimit {
				uc.logger.Warn("CreateReservation: user=%d reached limit %d in restaurant=%d",
					*req.UserID, settings.ReservationsPerUserLimit, req.RestaurantID)
				return ErrUserLimitExceeded
			}
		}

		// 8.2. Брони столика на дату с блокировкой (FOR UPDATE) —
		// повторная авторитетная проверка конфликта на момент коммита
		existing, err := uc.reservationRepo.GetByTableAndDate(txCtx, req.TableID, date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		if hasConflict(existing, req.StartTime, req.EndTime) {
			uc.logger.Warn("CreateReservation: conflict for table=%d on %s %s-%s",
				req.TableID, date.Format(domain.DateFormat), req.StartTime, req.EndTime)
			return ErrTableNotAvailable
		}

		// 8.3. Начальный статус по политике подтверждения ресторана
		reservation := &domain.TableReservation{
			RestaurantID:    req.RestaurantID,
			TableID:         req.TableID,
			ReservationDate: date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			NumberOfGuests:  req.NumberOfGuests,
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerEmail:   req.CustomerEmail,
			UserID:          req.UserID,
			Notes:           req.Notes,
			Status:          settings.InitialStatus(),
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конфликт сериализации, не разрешившийся за отведённые повторы, —
		// штатный исход конкурентных коммитов на одно окно, а не сбой
		if errors.Is(err, txmanager.ErrRetriesExhausted) {
			uc.logger.Warn("CreateReservation: serializable retries exhausted for table=%d on %s",
				req.TableID, date.Format(domain.DateFormat))
			return nil, ErrTableNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d status=%s",
		result.ID, result.Status)

	// 9. Уведомления после коммита: fire-and-forget, бронь уже создана
	uc.notifyCreated(result)

	return &Response{
		ID:             result.ID,
		RestaurantID:   result.RestaurantID,
		TableID:        result.TableID,
		Date:           result.ReservationDate,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		NumberOfGuests: result.NumberOfGuests,
		CustomerName:   result.CustomerName,
		CustomerPhone:  result.CustomerPhone,
		CustomerEmail:  result.CustomerEmail,
		UserID:         result.UserID,
		Notes:          result.Notes,
		Status:         string(result.Status),
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

// notifyCreated рассылает событие создания брони во все подключённые
// каналы. Выполняется в отдельной горутине с собственным таймаутом:
// медленный брокер не задерживает ответ клиенту.
func (uc *UseCase) notifyCreated(res *domain.TableReservation) {
	snapshot := *res

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if uc.cache != nil {
			uc.cache.Invalidate(ctx, snapshot.TableID, snapshot.ReservationDate)
		}

		if uc.publisher != nil {
			event := notify.ReservationEvent{
				Type:          notify.EventReservationCreated,
				ReservationID: snapshot.ID,
				RestaurantID:  snapshot.RestaurantID,
				TableID:       snapshot.TableID,
				Date:          snapshot.ReservationDate.Format(domain.DateFormat),
				StartTime:     snapshot.StartTime.String(),
				EndTime:       snapshot.EndTime.String(),
				Status:        string(snapshot.Status),
				OccurredAt:    time.Now().UTC(),
			}
			if err := uc.publisher.Publish(ctx, event); err != nil {
				uc.logger.Warn("CreateReservation: event publish failed: %v", err)
			}
		}

		if uc.broadcaster != nil {
			uc.broadcaster.Broadcast(realtime.Message{
				Topic: realtime.AvailabilityTopic(snapshot.RestaurantID),
				Type:  notify.EventReservationCreated,
				Payload: map[string]interface{}{
					"tableId":   snapshot.TableID,
					"date":      snapshot.ReservationDate.Format(domain.DateFormat),
					"startTime": snapshot.StartTime.String(),
					"endTime":   snapshot.EndTime.String(),
				},
			})
		}
	}()
}
