package find_available_tables

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Request запрос на поиск свободных столиков
type Request struct {
	RestaurantID int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	PartySize    int
}

// AvailableTable свободный столик, подходящий под запрошенное окно
type AvailableTable struct {
	TableID     int64
	TableNumber int
	Capacity    int
}

// Response список свободных столиков, отсортированный по вместимости.
// Снимок на момент чтения: к моменту создания брони доступность может
// измениться, авторитетна только проверка при коммите.
type Response struct {
	RestaurantID int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	PartySize    int
	Tables       []AvailableTable
}
