package get_restaurant_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	getWeekSchedule "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_week_schedule"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgRestaurantNotFound  = "ресторан не найден"
)

type Handler struct {
	useCase GetWeekScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем restaurantId из URL
	restaurantIDStr := vars["restaurantId"]
	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/schedule - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getWeekSchedule.Request{RestaurantID: restaurantID})
	if err != nil {
		switch {
		case errors.Is(err, getWeekSchedule.ErrRestaurantNotFound):
			h.logger.Warn("GET /restaurants/{id}/schedule - Restaurant not found: restaurant_id=%d", restaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, getWeekSchedule.ErrInvalidInput):
			h.logger.Warn("GET /restaurants/{id}/schedule - Invalid input: restaurant_id=%d, error=%v", restaurantID, err)
			handlers.RespondBadRequest(w, msgInvalidRestaurantID)

		default:
			h.logger.Error("GET /restaurants/{id}/schedule - Failed to get schedule: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /restaurants/{id}/schedule - Schedule returned: restaurant_id=%d", restaurantID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
