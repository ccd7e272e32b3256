package update_restaurant_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings/models"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidSettings     = "некорректные значения настроек"
	msgRestaurantNotFound  = "ресторан не найден"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
)

// updateSettingsBody тело PATCH запроса, все поля опциональны
type updateSettingsBody struct {
	ReservationsNeedConfirmation  *bool `json:"reservationsNeedConfirmation,omitempty"`
	MinReservationDurationMinutes *int  `json:"minReservationDurationMinutes,omitempty"`
	MaxReservationDurationMinutes *int  `json:"maxReservationDurationMinutes,omitempty"`
	MinAdvanceBookingMinutes      *int  `json:"minAdvanceBookingMinutes,omitempty"`
	MaxAdvanceBookingDays         *int  `json:"maxAdvanceBookingDays,omitempty"`
	MinGuestsPerReservation       *int  `json:"minGuestsPerReservation,omitempty"`
	MaxGuestsPerReservation       *int  `json:"maxGuestsPerReservation,omitempty"`
	ReservationsPerUserLimit      *int  `json:"reservationsPerUserLimit,omitempty"`
	LimitCountsPending            *bool `json:"limitCountsPending,omitempty"`
}

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/restaurants/{restaurantId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем restaurantId из URL
	vars := mux.Vars(r)
	restaurantIDStr := vars["restaurantId"]

	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /restaurants/{id}/settings - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /restaurants/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body updateSettingsBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PATCH /restaurants/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем настройки (сервис проверит права владельца ресторана)
	result, err := h.service.Update(r.Context(), &models.UpdateSettingsRequest{
		UserID:                        userID,
		RestaurantID:                  restaurantID,
		ReservationsNeedConfirmation:  body.ReservationsNeedConfirmation,
		MinReservationDurationMinutes: body.MinReservationDurationMinutes,
		MaxReservationDurationMinutes: body.MaxReservationDurationMinutes,
		MinAdvanceBookingMinutes:      body.MinAdvanceBookingMinutes,
		MaxAdvanceBookingDays:         body.MaxAdvanceBookingDays,
		MinGuestsPerReservation:       body.MinGuestsPerReservation,
		MaxGuestsPerReservation:       body.MaxGuestsPerReservation,
		ReservationsPerUserLimit:      body.ReservationsPerUserLimit,
		LimitCountsPending:            body.LimitCountsPending,
	})
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrRestaurantNotFound):
			h.logger.Warn("PATCH /restaurants/{id}/settings - Restaurant not found: restaurant_id=%d", restaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("PATCH /restaurants/{id}/settings - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PATCH /restaurants/{id}/settings - Invalid settings: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondBadRequest(w, msgInvalidSettings)

		default:
			h.logger.Error("PATCH /restaurants/{id}/settings - Failed to update settings: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /restaurants/{id}/settings - Settings updated successfully: restaurant_id=%d, user_id=%d",
		restaurantID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
