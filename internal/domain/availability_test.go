package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailyMap(t *testing.T) {
	allDay := &OpeningHours{OpenTime: ts("00:00"), CloseTime: ts("23:59")}

	t.Run("map is always 96 slots long", func(t *testing.T) {
		m := BuildDailyMap(allDay, nil)
		require.Len(t, m, SlotsPerDay)
		assert.Equal(t, strings.Repeat("1", SlotsPerDay), m)
	})

	t.Run("building twice gives the same map", func(t *testing.T) {
		reservations := []*TableReservation{
			{StartTime: ts("12:00"), EndTime: ts("14:00"), Status: StatusConfirmed},
		}
		first := BuildDailyMap(allDay, reservations)
		second := BuildDailyMap(allDay, reservations)
		assert.Equal(t, first, second)
	})

	t.Run("reservation blocks its slots and nothing else", func(t *testing.T) {
		reservations := []*TableReservation{
			{StartTime: ts("12:00"), EndTime: ts("14:00"), Status: StatusConfirmed},
		}
		m := BuildDailyMap(allDay, reservations)
		require.Len(t, m, SlotsPerDay)

		// 12:00-14:00 покрывает слоты 48..55
		for i := 48; i < 56; i++ {
			assert.False(t, IsSlotAvailable(m, i), "slot %d must be blocked", i)
		}
		assert.True(t, IsSlotAvailable(m, 47))
		assert.True(t, IsSlotAvailable(m, 56))
	})

	t.Run("partial slot is blocked entirely", func(t *testing.T) {
		reservations := []*TableReservation{
			{StartTime: ts("12:10"), EndTime: ts("12:20"), Status: StatusPending},
		}
		m := BuildDailyMap(allDay, reservations)
		assert.False(t, IsSlotAvailable(m, SlotIndex(ts("12:00"))))
		assert.False(t, IsSlotAvailable(m, SlotIndex(ts("12:15"))))
		assert.True(t, IsSlotAvailable(m, SlotIndex(ts("12:30"))))
	})

	t.Run("cancelled reservations do not block", func(t *testing.T) {
		reservations := []*TableReservation{
			{StartTime: ts("12:00"), EndTime: ts("14:00"), Status: StatusCancelled},
			{StartTime: ts("16:00"), EndTime: ts("18:00"), Status: StatusCompleted},
		}
		m := BuildDailyMap(allDay, reservations)
		assert.Equal(t, strings.Repeat("1", SlotsPerDay), m)
	})

	t.Run("slots outside opening hours are blocked", func(t *testing.T) {
		hours := &OpeningHours{OpenTime: ts("10:00"), CloseTime: ts("22:00")}
		m := BuildDailyMap(hours, nil)

		assert.False(t, IsSlotAvailable(m, SlotIndex(ts("09:45"))))
		assert.True(t, IsSlotAvailable(m, SlotIndex(ts("10:00"))))
		assert.True(t, IsSlotAvailable(m, SlotIndex(ts("21:45"))))
		assert.False(t, IsSlotAvailable(m, SlotIndex(ts("22:15"))))
	})

	t.Run("closed day gives empty map", func(t *testing.T) {
		m := BuildDailyMap(nil, nil)
		assert.Equal(t, EmptyDailyMap(), m)

		closed := &OpeningHours{OpenTime: ts("10:00"), CloseTime: ts("22:00"), IsClosed: true}
		assert.Equal(t, EmptyDailyMap(), BuildDailyMap(closed, nil))
	})

	t.Run("overnight hours open both edges of the day", func(t *testing.T) {
		overnight := &OpeningHours{OpenTime: ts("18:00"), CloseTime: ts("02:00")}
		m := BuildDailyMap(overnight, nil)

		assert.True(t, IsSlotAvailable(m, SlotIndex(ts("00:30"))))
		assert.True(t, IsSlotAvailable(m, SlotIndex(ts("23:45"))))
		assert.False(t, IsSlotAvailable(m, SlotIndex(ts("12:00"))))
	})
}

func TestSlotIndex(t *testing.T) {
	assert.Equal(t, 0, SlotIndex(ts("00:00")))
	assert.Equal(t, 48, SlotIndex(ts("12:00")))
	assert.Equal(t, 95, SlotIndex(ts("23:45")))
	assert.Equal(t, 95, SlotIndex(ts("23:59")))
	assert.Equal(t, -1, SlotIndex(ts("24:00")))
	assert.Equal(t, -1, SlotIndex(ts("bad")))
}

func TestIsSlotAvailable(t *testing.T) {
	m := BuildDailyMap(&OpeningHours{OpenTime: ts("00:00"), CloseTime: ts("23:59")}, nil)

	assert.True(t, IsSlotAvailable(m, 0))
	assert.True(t, IsSlotAvailable(m, SlotsPerDay-1))
	// Индексы вне диапазона недоступны
	assert.False(t, IsSlotAvailable(m, -1))
	assert.False(t, IsSlotAvailable(m, SlotsPerDay))
}
