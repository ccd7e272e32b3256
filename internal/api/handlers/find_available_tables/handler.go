package find_available_tables

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	findAvailableTables "github.com/m04kA/SMC-RestaurantService/internal/usecase/find_available_tables"
)

const (
	msgInvalidRestaurantID  = "некорректный ID ресторана"
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTime          = "время начала и окончания обязательны"
	msgInvalidTime          = "некорректный формат времени, ожидается HH:MM"
	msgMissingPartySize     = "число гостей обязательно"
	msgInvalidPartySize     = "некорректное число гостей"
	msgRestaurantNotFound   = "ресторан не найден"
	msgRestaurantInactive   = "ресторан не принимает брони"
	msgInvalidTimeRange     = "время начала должно быть раньше времени окончания"
	msgOutsideOpeningHours  = "выбранное время вне часов работы ресторана"
	msgInvalidDuration      = "длительность брони вне допустимых границ"
	msgOutsideBookingWindow = "дата вне допустимого окна бронирования"
)

type Handler struct {
	useCase FindAvailableTablesUseCase
	logger  Logger
}

func NewHandler(useCase FindAvailableTablesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/available-tables
// Query params: date (YYYY-MM-DD), startTime (HH:MM), endTime (HH:MM), partySize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем restaurantId из URL
	restaurantIDStr := vars["restaurantId"]
	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/available-tables - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	query := r.URL.Query()

	// Извлекаем date из query параметров
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /restaurants/{id}/available-tables - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем startTime и endTime из query параметров
	startStr := query.Get("startTime")
	endStr := query.Get("endTime")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /restaurants/{id}/available-tables - Missing time range")
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	// Извлекаем partySize из query параметров
	partySizeStr := query.Get("partySize")
	if partySizeStr == "" {
		h.logger.Warn("GET /restaurants/{id}/available-tables - Missing party size")
		handlers.RespondBadRequest(w, msgMissingPartySize)
		return
	}

	partySize, err := strconv.Atoi(partySizeStr)
	if err != nil || partySize <= 0 {
		h.logger.Warn("GET /restaurants/{id}/available-tables - Invalid party size: %s", partySizeStr)
		handlers.RespondBadRequest(w, msgInvalidPartySize)
		return
	}

	// Формируем запрос к use case (с парсингом даты и времени)
	useCaseReq, err := ToUseCaseRequest(restaurantID, dateStr, startStr, endStr, partySize)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/available-tables - Failed to parse request: %v", err)
		if len(dateStr) != len("2006-01-02") {
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
		case errors.Is(err, findAvailableTables.ErrRestaurantNotFound):
			h.logger.Warn("GET /restaurants/{id}/available-tables - Restaurant not found: restaurant_id=%d", restaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, findAvailableTables.ErrRestaurantInactive):
			h.logger.Warn("GET /restaurants/{id}/available-tables - Restaurant inactive: restaurant_id=%d", restaurantID)
			handlers.RespondBadRequest(w, msgRestaurantInactive)

		case errors.Is(err, findAvailableTables.ErrInvalidTimeRange):
			h.logger.Warn("GET /restaurants/{id}/available-tables - Invalid time range: restaurant_id=%d", restaurantID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, findAvailableTables.ErrOutsideOpeningHours):
			h.logger.Warn("GET /restaurants/{id}/available-tables - Outside opening hours: restaurant_id=%d", restaurantID)
			handlers.RespondBadRequest(w, msgOutsideOpeningHours)

		case errors.Is(err, findAvailableTables.ErrInvalidDuration):
			h.logger.Warn("GET /restaurants/{id}/available-tables - Invalid duration: restaurant_id=%d", restaurantID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, findAvailableTables.ErrOutsideBookingWindow):
			h.logger.Warn("GET /restaurants/{id}/available-tables - Outside booking window: restaurant_id=%d", restaurantID)
			handlers.RespondBadRequest(w, msgOutsideBookingWindow)

		case errors.Is(err, findAvailableTables.ErrInvalidInput):
			h.logger.Warn("GET /restaurants/{id}/available-tables - Invalid input: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondBadRequest(w, msgInvalidPartySize)

		default:
			h.logger.Error("GET /restaurants/{id}/available-tables - Failed to find tables: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /restaurants/{id}/available-tables - Tables retrieved successfully: restaurant_id=%d, tables_count=%d",
		restaurantID, len(result.Tables))
	handlers.RespondJSON(w, http.StatusOK, response)
}
