package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/infra/notify"
	reservationRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/reservation"
	restaurantRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/restaurant"
	"github.com/m04kA/SMC-RestaurantService/internal/realtime"
	"github.com/m04kA/SMC-RestaurantService/internal/service/reservations/models"
)

// notifyTimeout таймаут фоновой доставки уведомлений после коммита
const notifyTimeout = 5 * time.Second

// Service сервис для работы с бронями столиков
type Service struct {
	reservationRepo ReservationRepository
	restaurantRepo  RestaurantRepository
	txManager       TransactionManager
	publisher       EventPublisher          // опционально, nil = выключено
	broadcaster     Broadcaster             // опционально, nil = выключено
	cache           AvailabilityInvalidator // опционально, nil = выключено
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	restaurantRepo RestaurantRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	broadcaster Broadcaster,
	cache AvailabilityInvalidator,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		restaurantRepo:  restaurantRepo,
		txManager:       txManager,
		publisher:       publisher,
		broadcaster:     broadcaster,
		cache:           cache,
		logger:          logger,
	}
}

// GetByID получает бронь по ID
// Проверяет права доступа - пользователь может видеть только свою бронь
// или если он является владельцем ресторана
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetRestaurantReservations получает брони ресторана с гибкой фильтрацией
// Поддерживает фильтрацию по столику, дате, статусу и включению неактивных броней
// Доступно только владельцу ресторана
func (s *Service) GetRestaurantReservations(ctx context.Context, req *models.GetRestaurantReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("GetRestaurantReservations: fetching reservations for restaurant=%d, user=%d", req.RestaurantID, req.UserID)
	if req.TableID != nil {
		logMsg += fmt.Sprintf(", table=%d", *req.TableID)
	}
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права владельца ресторана
	if err := s.checkOwnerAccess(ctx, req.RestaurantID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetRestaurantReservations: invalid filter for restaurant=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByRestaurantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetRestaurantReservations: repository error for restaurant=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: GetRestaurantReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRestaurantReservations: successfully fetched %d reservations for restaurant=%d",
		len(reservations), req.RestaurantID)
	return models.FromDomainReservationList(reservations), nil
}

// ChangeStatus переводит бронь в новый статус.
// Допустимость перехода проверяет машина статусов: pending -> confirmed/cancelled,
// confirmed -> cancelled/completed, терминальные статусы неизменяемы.
// Владелец ресторана может выполнить любой допустимый переход,
// клиент - только отменить свою бронь.
func (s *Service) ChangeStatus(ctx context.Context, reservationID int64, req *models.ChangeStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("ChangeStatus: updating reservation id=%d to status=%s by user=%d",
		reservationID, req.Status, req.UserID)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("ChangeStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return nil, ErrInvalidStatus
	}

	var updated *domain.TableReservation
	var previous domain.ReservationStatus

	// Чтение текущего статуса и переход выполняются в одной транзакции,
	// чтобы конкурирующие переходы не прошли guard по устаревшему статусу.
	// Ошибки репозитория оборачиваются с сохранением цепочки:
	// serialization_failure должен дойти до менеджера транзакций
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("ChangeStatus: reservation id=%d not found", reservationID)
				return ErrReservationNotFound
			}
			s.logger.Error("ChangeStatus: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: ChangeStatus - repository error: %w", ErrInternal, err)
		}

		// Проверяем права доступа
		if err := s.checkMutationAccess(txCtx, reservation, req.UserID, newStatus); err != nil {
			s.logger.Warn("ChangeStatus: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
			return err
		}

		// Guard машины статусов
		if !reservation.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("ChangeStatus: transition %s -> %s is not allowed for reservation id=%d",
				reservation.Status, newStatus, reservationID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, reservation.Status, newStatus)
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, reservationID, newStatus); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("ChangeStatus: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: ChangeStatus - repository error: %w", ErrInternal, err)
		}

		previous = reservation.Status
		reservation.Status = newStatus
		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ChangeStatus: successfully updated reservation id=%d: %s -> %s",
		reservationID, previous, updated.Status)

	// Смена статуса меняет занятость столика - уведомляем после коммита
	s.notifyChanged(updated, notify.EventReservationStatusChanged)

	return models.FromDomainReservation(updated), nil
}

// Delete удаляет бронь. Доступно только владельцу ресторана;
// клиенты отменяют брони через смену статуса, сохраняя историю
func (s *Service) Delete(ctx context.Context, reservationID int64, req *models.DeleteReservationRequest) error {
	s.logger.Info("Delete: deleting reservation id=%d by user=%d", reservationID, req.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// Только владелец ресторана
	if err := s.checkOwnerAccess(ctx, reservation.RestaurantID, req.UserID); err != nil {
		s.logger.Warn("Delete: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
		return err
	}

	if err := s.reservationRepo.Delete(ctx, reservationID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found during deletion", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", reservationID)

	s.notifyChanged(reservation, notify.EventReservationDeleted)

	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к брони
// Пользователь может видеть свою бронь или если он владелец ресторана
func (s *Service) checkUserAccess(ctx context.Context, res *domain.TableReservation, userID int64) error {
	// Владелец брони - доступ разрешён
	if res.UserID != nil && *res.UserID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, res.RestaurantID, userID); err != nil {
		// Ошибка уже залогирована в checkOwnerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkMutationAccess проверяет права на смену статуса:
// владелец ресторана - любой переход, владелец брони - только отмена
func (s *Service) checkMutationAccess(ctx context.Context, res *domain.TableReservation, userID int64, newStatus domain.ReservationStatus) error {
	if res.UserID != nil && *res.UserID == userID && newStatus == domain.StatusCancelled {
		return nil
	}
	return s.checkOwnerAccess(ctx, res.RestaurantID, userID)
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

// notifyChanged рассылает событие изменения брони во все подключённые каналы.
// Выполняется в отдельной горутине с собственным таймаутом
func (s *Service) notifyChanged(res *domain.TableReservation, eventType string) {
	snapshot := *res

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if s.cache != nil {
			s.cache.Invalidate(ctx, snapshot.TableID, snapshot.ReservationDate)
		}

		if s.publisher != nil {
			event := notify.ReservationEvent{
				Type:          eventType,
				ReservationID: snapshot.ID,
				RestaurantID:  snapshot.RestaurantID,
				TableID:       snapshot.TableID,
				Date:          snapshot.ReservationDate.Format(domain.DateFormat),
				StartTime:     snapshot.StartTime.String(),
				EndTime:       snapshot.EndTime.String(),
				Status:        string(snapshot.Status),
				OccurredAt:    time.Now().UTC(),
			}
			if err := s.publisher.Publish(ctx, event); err != nil {
				s.logger.Warn("notifyChanged: event publish failed: %v", err)
			}
		}

		if s.broadcaster != nil {
			s.broadcaster.Broadcast(realtime.Message{
				Topic: realtime.AvailabilityTopic(snapshot.RestaurantID),
				Type:  eventType,
				Payload: map[string]interface{}{
					"tableId":   snapshot.TableID,
					"date":      snapshot.ReservationDate.Format(domain.DateFormat),
					"startTime": snapshot.StartTime.String(),
					"endTime":   snapshot.EndTime.String(),
					"status":    string(snapshot.Status),
				},
			})
		}
	}()
}
