package models

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек бронирования.
// Опциональные поля: nil оставляет текущее значение без изменений
type UpdateSettingsRequest struct {
	UserID       int64 `json:"userId"`
	RestaurantID int64 `json:"restaurantId"`

	ReservationsNeedConfirmation *bool `json:"reservationsNeedConfirmation,omitempty"`

	MinReservationDurationMinutes *int `json:"minReservationDurationMinutes,omitempty"`
	MaxReservationDurationMinutes *int `json:"maxReservationDurationMinutes,omitempty"`

	MinAdvanceBookingMinutes *int `json:"minAdvanceBookingMinutes,omitempty"`
	MaxAdvanceBookingDays    *int `json:"maxAdvanceBookingDays,omitempty"`

	MinGuestsPerReservation *int `json:"minGuestsPerReservation,omitempty"`
	MaxGuestsPerReservation *int `json:"maxGuestsPerReservation,omitempty"`

	ReservationsPerUserLimit *int  `json:"reservationsPerUserLimit,omitempty"`
	LimitCountsPending       *bool `json:"limitCountsPending,omitempty"`
}

// ApplyTo накладывает указанные в запросе поля на текущие настройки
func (r *UpdateSettingsRequest) ApplyTo(s *domain.RestaurantSettings) {
	if r.ReservationsNeedConfirmation != nil {
		s.ReservationsNeedConfirmation = *r.ReservationsNeedConfirmation
	}
	if r.MinReservationDurationMinutes != nil {
		s.MinReservationDurationMinutes = *r.MinReservationDurationMinutes
	}
	if r.MaxReservationDurationMinutes != nil {
		s.MaxReservationDurationMinutes = *r.MaxReservationDurationMinutes
	}
	if r.MinAdvanceBookingMinutes != nil {
		s.MinAdvanceBookingMinutes = *r.MinAdvanceBookingMinutes
	}
	if r.MaxAdvanceBookingDays != nil {
		s.MaxAdvanceBookingDays = *r.MaxAdvanceBookingDays
	}
	if r.MinGuestsPerReservation != nil {
		s.MinGuestsPerReservation = *r.MinGuestsPerReservation
	}
	if r.MaxGuestsPerReservation != nil {
		s.MaxGuestsPerReservation = *r.MaxGuestsPerReservation
	}
	if r.ReservationsPerUserLimit != nil {
		s.ReservationsPerUserLimit = *r.ReservationsPerUserLimit
	}
	if r.LimitCountsPending != nil {
		s.LimitCountsPending = *r.LimitCountsPending
	}
}

// Response модели

// SettingsResponse ответ с настройками бронирования ресторана
type SettingsResponse struct {
	RestaurantID                  int64  `json:"restaurantId"`
	ReservationsNeedConfirmation  bool   `json:"reservationsNeedConfirmation"`
	MinReservationDurationMinutes int    `json:"minReservationDurationMinutes"`
	MaxReservationDurationMinutes int    `json:"maxReservationDurationMinutes"`
	MinAdvanceBookingMinutes      int    `json:"minAdvanceBookingMinutes"`
	MaxAdvanceBookingDays         int    `json:"maxAdvanceBookingDays"`
	MinGuestsPerReservation       int    `json:"minGuestsPerReservation"`
	MaxGuestsPerReservation       int    `json:"maxGuestsPerReservation"`
	ReservationsPerUserLimit      int    `json:"reservationsPerUserLimit"`
	LimitCountsPending            bool   `json:"limitCountsPending"`
	UpdatedAt                     string `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в response
func FromDomainSettings(s *domain.RestaurantSettings) *SettingsResponse {
	return &SettingsResponse{
		RestaurantID:                  s.RestaurantID,
		ReservationsNeedConfirmation:  s.ReservationsNeedConfirmation,
		MinReservationDurationMinutes: s.MinReservationDurationMinutes,
		MaxReservationDurationMinutes: s.MaxReservationDurationMinutes,
		MinAdvanceBookingMinutes:      s.MinAdvanceBookingMinutes,
		MaxAdvanceBookingDays:         s.MaxAdvanceBookingDays,
		MinGuestsPerReservation:       s.MinGuestsPerReservation,
		MaxGuestsPerReservation:       s.MaxGuestsPerReservation,
		ReservationsPerUserLimit:      s.ReservationsPerUserLimit,
		LimitCountsPending:            s.LimitCountsPending,
		UpdatedAt:                     s.UpdatedAt.Format(time.RFC3339),
	}
}
