package build_availability_map

import "time"

// Request запрос карты доступности столика на дату
type Request struct {
	TableID int64
	Date    time.Time
}

// Response суточная карта доступности: 96 символов, по одному на
// 15-минутный интервал начиная с 00:00; '1' — свободно, '0' — занято
// или вне рабочих часов
type Response struct {
	TableID         int64
	RestaurantID    int64
	Date            time.Time
	AvailabilityMap string
}
