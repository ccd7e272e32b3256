package find_available_tables

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	findAvailableTables "github.com/m04kA/SMC-RestaurantService/internal/usecase/find_available_tables"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// AvailableTableResponse свободный столик в HTTP ответе
type AvailableTableResponse struct {
	TableID     int64 `json:"tableId"`
	TableNumber int   `json:"tableNumber"`
	Capacity    int   `json:"capacity"`
}

// AvailableTablesResponse HTTP response model
type AvailableTablesResponse struct {
	RestaurantID int64                    `json:"restaurantId"`
	Date         string                   `json:"date"`
	StartTime    string                   `json:"startTime"`
	EndTime      string                   `json:"endTime"`
	PartySize    int                      `json:"partySize"`
	Tables       []AvailableTableResponse `json:"tables"`
}

// ToUseCaseRequest формирует запрос к use case (с парсингом даты и времени)
func ToUseCaseRequest(restaurantID int64, dateStr, startStr, endStr string, partySize int) (*findAvailableTables.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return nil, err
	}

	return &findAvailableTables.Request{
		RestaurantID: restaurantID,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		PartySize:    partySize,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findAvailableTables.Response) *AvailableTablesResponse {
	tables := make([]AvailableTableResponse, 0, len(resp.Tables))
	for _, t := range resp.Tables {
		tables = append(tables, AvailableTableResponse{
			TableID:     t.TableID,
			TableNumber: t.TableNumber,
			Capacity:    t.Capacity,
		})
	}

	return &AvailableTablesResponse{
		RestaurantID: resp.RestaurantID,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		PartySize:    resp.PartySize,
		Tables:       tables,
	}
}
