package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// ChangeStatusRequest запрос на смену статуса брони
type ChangeStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// DeleteReservationRequest запрос на удаление брони
type DeleteReservationRequest struct {
	UserID int64 `json:"userId"`
}

// GetRestaurantReservationsRequest запрос на получение броней ресторана
type GetRestaurantReservationsRequest struct {
	UserID          int64      `json:"userId"`
	RestaurantID    int64      `json:"restaurantId"`
	TableID         *int64     `json:"tableId,omitempty"`         // Фильтр по столику (опционально)
	Date            *time.Time `json:"date,omitempty"`            // Фильтр по дате (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetRestaurantReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		RestaurantID:    r.RestaurantID,
		TableID:         r.TableID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID             int64   `json:"id"`
	RestaurantID   int64   `json:"restaurantId"`
	TableID        int64   `json:"tableId"`
	Date           string  `json:"date"`      // "2025-10-15"
	StartTime      string  `json:"startTime"` // "18:00"
	EndTime        string  `json:"endTime"`   // "20:00"
	NumberOfGuests int     `json:"numberOfGuests"`
	CustomerName   string  `json:"customerName"`
	CustomerPhone  string  `json:"customerPhone"`
	CustomerEmail  string  `json:"customerEmail,omitempty"`
	UserID         *int64  `json:"userId,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ReservationListResponse список броней
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// Конвертеры

// ToDomainStatus конвертирует строку в domain.ReservationStatus
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(res *domain.TableReservation) *ReservationResponse {
	return &ReservationResponse{
		ID:             res.ID,
		RestaurantID:   res.RestaurantID,
		TableID:        res.TableID,
		Date:           res.ReservationDate.Format(domain.DateFormat),
		StartTime:      res.StartTime.String(),
		EndTime:        res.EndTime.String(),
		NumberOfGuests: res.NumberOfGuests,
		CustomerName:   res.CustomerName,
		CustomerPhone:  res.CustomerPhone,
		CustomerEmail:  res.CustomerEmail,
		UserID:         res.UserID,
		Notes:          res.Notes,
		Status:         string(res.Status),
		CreatedAt:      res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      res.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList конвертирует список domain моделей в response
func FromDomainReservationList(list []*domain.TableReservation) *ReservationListResponse {
	result := make([]*ReservationResponse, 0, len(list))
	for _, res := range list {
		result = append(result, FromDomainReservation(res))
	}
	return &ReservationListResponse{
		Reservations: result,
		Total:        len(result),
	}
}
