package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Request модель запроса на создание брони
type Request struct {
	RestaurantID   int64            // ID ресторана
	TableID        int64            // ID столика
	Date           time.Time        // Дата брони (без времени)
	StartTime      types.TimeString // Время начала (например, "12:00")
	EndTime        types.TimeString // Время конца (например, "14:00")
	NumberOfGuests int              // Число гостей
	CustomerName   string           // Имя гостя
	CustomerPhone  string           // Телефон гостя
	CustomerEmail  string           // Email гостя
	UserID         *int64           // ID пользователя (nil для гостевой брони)
	Notes          *string          // Пожелания (опционально)
}

// Response модель ответа с созданной бронью
type Response struct {
	ID             int64            // ID созданной брони
	RestaurantID   int64            // ID ресторана
	TableID        int64            // ID столика
	Date           time.Time        // Дата брони
	StartTime      types.TimeString // Время начала
	EndTime        types.TimeString // Время конца
	NumberOfGuests int              // Число гостей
	CustomerName   string           // Имя гостя
	CustomerPhone  string           // Телефон гостя
	CustomerEmail  string           // Email гостя
	UserID         *int64           // ID пользователя
	Notes          *string          // Пожелания
	Status         string           // Статус: pending или confirmed по политике ресторана

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
