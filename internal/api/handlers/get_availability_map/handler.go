package get_availability_map

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	buildAvailabilityMap "github.com/m04kA/SMC-RestaurantService/internal/usecase/build_availability_map"
)

const (
	msgInvalidTableID = "некорректный ID столика"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTableNotFound  = "столик не найден"
)

type Handler struct {
	useCase BuildAvailabilityMapUseCase
	logger  Logger
}

func NewHandler(useCase BuildAvailabilityMapUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tables/{tableId}/availability-map
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем tableId из URL
	tableIDStr := vars["tableId"]
	tableID, err := strconv.ParseInt(tableIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tables/{id}/availability-map - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tables/{id}/availability-map - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(tableID, dateStr)
	if err != nil {
		h.logger.Warn("GET /tables/{id}/availability-map - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, buildAvailabilityMap.ErrTableNotFound):
			h.logger.Warn("GET /tables/{id}/availability-map - Table not found: table_id=%d", tableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, buildAvailabilityMap.ErrInvalidInput):
			h.logger.Warn("GET /tables/{id}/availability-map - Invalid input: table_id=%d, error=%v", tableID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /tables/{id}/availability-map - Failed to build map: table_id=%d, error=%v",
				tableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /tables/{id}/availability-map - Map built successfully: table_id=%d, date=%s",
		tableID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, response)
}
