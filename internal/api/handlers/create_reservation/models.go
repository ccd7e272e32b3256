package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	createReservation "github.com/m04kA/SMC-RestaurantService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	RestaurantID   int64   `json:"restaurantId"`
	TableID        int64   `json:"tableId"`
	Date           string  `json:"date"`      // "2025-10-15"
	StartTime      string  `json:"startTime"` // "18:00"
	EndTime        string  `json:"endTime"`   // "20:00"
	NumberOfGuests int     `json:"numberOfGuests"`
	CustomerName   string  `json:"customerName"`
	CustomerPhone  string  `json:"customerPhone"`
	CustomerEmail  string  `json:"customerEmail,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             int64   `json:"id"`
	RestaurantID   int64   `json:"restaurantId"`
	TableID        int64   `json:"tableId"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
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

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		RestaurantID:   r.RestaurantID,
		TableID:        r.TableID,
		Date:           date,
		StartTime:      startTime,
		EndTime:        endTime,
		NumberOfGuests: r.NumberOfGuests,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		CustomerEmail:  r.CustomerEmail,
		UserID:         &userID,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:             resp.ID,
		RestaurantID:   resp.RestaurantID,
		TableID:        resp.TableID,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		NumberOfGuests: resp.NumberOfGuests,
		CustomerName:   resp.CustomerName,
		CustomerPhone:  resp.CustomerPhone,
		CustomerEmail:  resp.CustomerEmail,
		UserID:         resp.UserID,
		Notes:          resp.Notes,
		Status:         resp.Status,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
