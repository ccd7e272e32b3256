package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOpenAt(t *testing.T) {
	regular := &OpeningHours{
		Weekday:   time.Monday,
		OpenTime:  ts("10:00"),
		CloseTime: ts("22:00"),
	}

	overnight := &OpeningHours{
		Weekday:   time.Friday,
		OpenTime:  ts("18:00"),
		CloseTime: ts("02:00"),
	}

	t.Run("regular day", func(t *testing.T) {
		assert.True(t, regular.IsOpenAt(ts("10:00")))
		assert.True(t, regular.IsOpenAt(ts("15:30")))
		assert.True(t, regular.IsOpenAt(ts("22:00")))
		assert.False(t, regular.IsOpenAt(ts("09:59")))
		assert.False(t, regular.IsOpenAt(ts("22:01")))
		assert.False(t, regular.IsOpenAt(ts("00:00")))
	})

	t.Run("overnight schedule", func(t *testing.T) {
		assert.True(t, overnight.SpansMidnight())
		assert.True(t, overnight.IsOpenAt(ts("18:00")))
		assert.True(t, overnight.IsOpenAt(ts("23:30")))
		assert.True(t, overnight.IsOpenAt(ts("00:30")))
		assert.True(t, overnight.IsOpenAt(ts("02:00")))
		assert.False(t, overnight.IsOpenAt(ts("02:01")))
		assert.False(t, overnight.IsOpenAt(ts("12:00")))
	})

	t.Run("closed day", func(t *testing.T) {
		closed := &OpeningHours{OpenTime: ts("10:00"), CloseTime: ts("22:00"), IsClosed: true}
		assert.False(t, closed.IsOpenAt(ts("12:00")))
	})

	t.Run("nil schedule is closed", func(t *testing.T) {
		var h *OpeningHours
		assert.False(t, h.IsOpenAt(ts("12:00")))
	})
}

func TestContainsWindow(t *testing.T) {
	regular := &OpeningHours{OpenTime: ts("10:00"), CloseTime: ts("22:00")}
	overnight := &OpeningHours{OpenTime: ts("18:00"), CloseTime: ts("02:00")}

	cases := []struct {
		name     string
		hours    *OpeningHours
		start    string
		end      string
		expected bool
	}{
		{name: "inside regular hours", hours: regular, start: "12:00", end: "14:00", expected: true},
		{name: "exactly the whole day", hours: regular, start: "10:00", end: "22:00", expected: true},
		{name: "starts before opening", hours: regular, start: "08:00", end: "11:00", expected: false},
		{name: "ends after closing", hours: regular, start: "21:00", end: "23:00", expected: false},
		{name: "entirely outside", hours: regular, start: "23:00", end: "23:30", expected: false},
		{name: "overnight evening part", hours: overnight, start: "19:00", end: "23:00", expected: true},
		{name: "overnight morning part", hours: overnight, start: "00:30", end: "01:30", expected: true},
		{name: "overnight gap hours rejected", hours: overnight, start: "03:00", end: "17:00", expected: false},
		{name: "window through the closed gap", hours: overnight, start: "01:00", end: "19:00", expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.hours.ContainsWindow(ts(tc.start), ts(tc.end)))
		})
	}
}

func TestWeekSchedule(t *testing.T) {
	schedule := WeekSchedule{
		time.Monday: {Weekday: time.Monday, OpenTime: ts("10:00"), CloseTime: ts("22:00")},
	}

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	assert.NotNil(t, schedule.ForDate(monday))
	assert.Nil(t, schedule.ForDate(tuesday))

	assert.True(t, schedule.IsOpenOn(monday, ts("12:00")))
	// Нет записи на день — закрыто
	assert.False(t, schedule.IsOpenOn(tuesday, ts("12:00")))
}
