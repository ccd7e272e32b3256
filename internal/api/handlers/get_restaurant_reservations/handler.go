package get_restaurant_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/service/reservations"
	"github.com/m04kA/SMC-RestaurantService/internal/service/reservations/models"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidTableID      = "некорректный ID столика"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus       = "недопустимый статус брони"
	msgRestaurantNotFound  = "ресторан не найден"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/reservations
// Query params: tableId, date (YYYY-MM-DD), status, includeInactive - все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем restaurantId из URL
	vars := mux.Vars(r)
	restaurantIDStr := vars["restaurantId"]

	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/reservations - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /restaurants/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetRestaurantReservationsRequest{
		UserID:       userID,
		RestaurantID: restaurantID,
	}

	query := r.URL.Query()

	// Опциональный фильтр по столику
	if tableIDStr := query.Get("tableId"); tableIDStr != "" {
		tableID, err := strconv.ParseInt(tableIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /restaurants/{id}/reservations - Invalid table ID: %s", tableIDStr)
			handlers.RespondBadRequest(w, msgInvalidTableID)
			return
		}
		req.TableID = &tableID
	}

	// Опциональный фильтр по дате
	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /restaurants/{id}/reservations - Invalid date: %s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	// Опциональный фильтр по статусу
	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	// Включение отменённых и завершённых броней
	req.IncludeInactive = query.Get("includeInactive") == "true"

	// Получаем брони (сервис проверит права владельца ресторана)
	result, err := h.service.GetRestaurantReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrRestaurantNotFound):
			h.logger.Warn("GET /restaurants/{id}/reservations - Restaurant not found: restaurant_id=%d", restaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /restaurants/{id}/reservations - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /restaurants/{id}/reservations - Invalid filter: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /restaurants/{id}/reservations - Failed to get reservations: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /restaurants/{id}/reservations - Reservations retrieved successfully: restaurant_id=%d, count=%d",
		restaurantID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
