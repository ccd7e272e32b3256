package domain

import (
	"strings"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Availability map constants: фиксированная сетка 15-минутных слотов на сутки
const (
	SlotMinutes = 15
	SlotsPerDay = 24 * 60 / SlotMinutes // 96
)

const (
	slotAvailable = '1'
	slotBlocked   = '0'
)

// SlotIndex возвращает индекс 15-минутного слота для времени t.
// Для некорректного времени возвращает -1 — вызывающий код трактует
// это как "недоступно", а не как ошибку.
func SlotIndex(t types.TimeString) int {
	minutes, err := t.Minutes()
	if err != nil {
		return -1
	}
	return minutes / SlotMinutes
}

// BuildDailyMap строит карту доступности столика на день: строка из
// SlotsPerDay символов, '1' — слот свободен, '0' — занят или вне рабочих
// часов. Чистая функция от расписания и списка броней, идемпотентна.
func BuildDailyMap(hours *OpeningHours, reservations []*TableReservation) string {
	slots := make([]byte, SlotsPerDay)

	// Слоты вне рабочих часов закрыты; каждый слот проверяется по своей
	// границе, расписание через полночь обрабатывает IsOpenAt
	for i := 0; i < SlotsPerDay; i++ {
		slots[i] = slotBlocked
		slotStart, err := types.NewTimeStringFromMinutes(i * SlotMinutes)
		if err != nil {
			continue
		}
		if hours.IsOpenAt(slotStart) {
			slots[i] = slotAvailable
		}
	}

	// Активные брони закрывают слоты, чьё окно [slotStart, slotStart+15)
	// попадает внутрь [StartTime, EndTime)
	for _, res := range reservations {
		if !res.IsActive() {
			continue
		}
		markReserved(slots, res.StartTime, res.EndTime)
	}

	return string(slots)
}

// markReserved помечает занятыми слоты, пересекающиеся с окном [start, end)
func markReserved(slots []byte, start, end types.TimeString) {
	startMin, err := start.Minutes()
	if err != nil {
		return
	}
	endMin, err := end.Minutes()
	if err != nil {
		return
	}

	first := startMin / SlotMinutes
	for i := first; i < SlotsPerDay; i++ {
		slotStart := i * SlotMinutes
		if slotStart >= endMin {
			break
		}
		if slotStart+SlotMinutes <= startMin {
			continue
		}
		slots[i] = slotBlocked
	}
}

// IsSlotAvailable проверяет доступность слота с индексом idx в карте.
// Индекс вне диапазона [0, SlotsPerDay) считается недоступным.
func IsSlotAvailable(availabilityMap string, idx int) bool {
	if idx < 0 || idx >= SlotsPerDay || idx >= len(availabilityMap) {
		return false
	}
	return availabilityMap[idx] == slotAvailable
}

// EmptyDailyMap карта полностью закрытого дня
func EmptyDailyMap() string {
	return strings.Repeat(string(rune(slotBlocked)), SlotsPerDay)
}
