package get_availability_map

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	buildAvailabilityMap "github.com/m04kA/SMC-RestaurantService/internal/usecase/build_availability_map"
)

// AvailabilityMapResponse HTTP response model
type AvailabilityMapResponse struct {
	TableID         int64  `json:"tableId"`
	RestaurantID    int64  `json:"restaurantId"`
	Date            string `json:"date"`
	AvailabilityMap string `json:"availabilityMap"` // 96 символов, '1' свободно / '0' занято
}

// ToUseCaseRequest формирует запрос к use case (с парсингом даты)
func ToUseCaseRequest(tableID int64, dateStr string) (*buildAvailabilityMap.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &buildAvailabilityMap.Request{
		TableID: tableID,
		Date:    date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *buildAvailabilityMap.Response) *AvailabilityMapResponse {
	return &AvailabilityMapResponse{
		TableID:         resp.TableID,
		RestaurantID:    resp.RestaurantID,
		Date:            resp.Date.Format(domain.DateFormat),
		AvailabilityMap: resp.AvailabilityMap,
	}
}
