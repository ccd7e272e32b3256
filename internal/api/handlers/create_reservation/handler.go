package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-RestaurantService/internal/usecase/create_reservation"
)

const (
	msgUnauthorized          = "требуется авторизация"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime           = "некорректный формат времени, ожидается HH:MM"
	msgRestaurantNotFound    = "ресторан не найден"
	msgRestaurantInactive    = "ресторан не принимает брони"
	msgTableNotFound         = "столик не найден"
	msgTableNotAvailable     = "столик занят в выбранное время"
	msgInvalidPartySize      = "некорректное число гостей"
	msgPartyExceedsCapacity  = "число гостей превышает вместимость столика"
	msgInvalidTimeRange      = "время начала должно быть раньше времени окончания"
	msgInvalidDuration       = "длительность брони вне допустимых границ"
	msgOutsideOpeningHours   = "выбранное время вне часов работы ресторана"
	msgOutsideBookingWindow  = "выбранное время вне окна бронирования"
	msgUserLimitExceeded     = "превышен лимит активных броней в этом ресторане"
	msgInvalidReservationReq = "некорректные данные брони"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		if req.Date != "" && len(req.Date) != len("2006-01-02") {
			handlers.RespondBadRequest(w, msgInvalidDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidTime)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrTableNotAvailable):
			h.logger.Warn("POST /reservations - Table not available: user_id=%d, table_id=%d", userID, req.TableID)
			handlers.RespondError(w, http.StatusConflict, msgTableNotAvailable)

		case errors.Is(err, createReservation.ErrRestaurantNotFound):
			h.logger.Warn("POST /reservations - Restaurant not found: restaurant_id=%d", req.RestaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, createReservation.ErrTableNotFound):
			h.logger.Warn("POST /reservations - Table not found: table_id=%d", req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createReservation.ErrRestaurantInactive):
			h.logger.Warn("POST /reservations - Restaurant inactive: restaurant_id=%d", req.RestaurantID)
			handlers.RespondBadRequest(w, msgRestaurantInactive)

		case errors.Is(err, createReservation.ErrInvalidPartySize):
			h.logger.Warn("POST /reservations - Invalid party size: user_id=%d, guests=%d", userID, req.NumberOfGuests)
			handlers.RespondBadRequest(w, msgInvalidPartySize)

		case errors.Is(err, createReservation.ErrPartyExceedsCapacity):
			h.logger.Warn("POST /reservations - Party exceeds capacity: user_id=%d, table_id=%d, guests=%d",
				userID, req.TableID, req.NumberOfGuests)
			handlers.RespondBadRequest(w, msgPartyExceedsCapacity)

		case errors.Is(err, createReservation.ErrInvalidTimeRange):
			h.logger.Warn("POST /reservations - Invalid time range: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createReservation.ErrInvalidDuration):
			h.logger.Warn("POST /reservations - Invalid duration: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createReservation.ErrOutsideOpeningHours):
			h.logger.Warn("POST /reservations - Outside opening hours: user_id=%d, restaurant_id=%d",
				userID, req.RestaurantID)
			handlers.RespondBadRequest(w, msgOutsideOpeningHours)

		case errors.Is(err, createReservation.ErrOutsideBookingWindow):
			h.logger.Warn("POST /reservations - Outside booking window: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgOutsideBookingWindow)

		case errors.Is(err, createReservation.ErrUserLimitExceeded):
			h.logger.Warn("POST /reservations - User limit exceeded: user_id=%d, restaurant_id=%d",
				userID, req.RestaurantID)
			handlers.RespondError(w, http.StatusConflict, msgUserLimitExceeded)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidReservationReq)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, restaurant_id=%d, error=%v",
				userID, req.RestaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, table_id=%d",
		result.ID, userID, req.TableID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
