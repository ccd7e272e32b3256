package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RestaurantService/pkg/ptr"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name     string
		s1, e1   string
		s2, e2   string
		expected bool
	}{
		{name: "partial overlap", s1: "12:00", e1: "14:00", s2: "13:00", e2: "15:00", expected: true},
		{name: "containment", s1: "12:00", e1: "16:00", s2: "13:00", e2: "14:00", expected: true},
		{name: "identical windows", s1: "12:00", e1: "14:00", s2: "12:00", e2: "14:00", expected: true},
		{name: "touching windows do not overlap", s1: "12:00", e1: "14:00", s2: "14:00", e2: "16:00", expected: false},
		{name: "disjoint", s1: "10:00", e1: "11:00", s2: "14:00", e2: "16:00", expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Overlaps(ts(tc.s1), ts(tc.e1), ts(tc.s2), ts(tc.e2)))
			// Пересечение симметрично
			assert.Equal(t, tc.expected, Overlaps(ts(tc.s2), ts(tc.e2), ts(tc.s1), ts(tc.e1)))
		})
	}
}

func TestConflictsWith(t *testing.T) {
	base := TableReservation{
		ID:              10,
		TableID:         1,
		ReservationDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       ts("12:00"),
		EndTime:         ts("14:00"),
		Status:          StatusConfirmed,
	}

	t.Run("active reservation conflicts", func(t *testing.T) {
		assert.True(t, base.ConflictsWith(ts("13:00"), ts("15:00"), nil))
	})

	t.Run("cancelled reservation never conflicts", func(t *testing.T) {
		cancelled := base
		cancelled.Status = StatusCancelled
		assert.False(t, cancelled.ConflictsWith(ts("13:00"), ts("15:00"), nil))
	})

	t.Run("completed reservation never conflicts", func(t *testing.T) {
		completed := base
		completed.Status = StatusCompleted
		assert.False(t, completed.ConflictsWith(ts("13:00"), ts("15:00"), nil))
	})

	t.Run("excluded id is skipped", func(t *testing.T) {
		assert.False(t, base.ConflictsWith(ts("13:00"), ts("15:00"), ptr.Ptr(int64(10))))
		assert.True(t, base.ConflictsWith(ts("13:00"), ts("15:00"), ptr.Ptr(int64(11))))
	})

	t.Run("touching window is not a conflict", func(t *testing.T) {
		assert.False(t, base.ConflictsWith(ts("14:00"), ts("16:00"), nil))
	})
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestIsActive(t *testing.T) {
	assert.True(t, (&TableReservation{Status: StatusPending}).IsActive())
	assert.True(t, (&TableReservation{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&TableReservation{Status: StatusCancelled}).IsActive())
	assert.False(t, (&TableReservation{Status: StatusCompleted}).IsActive())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusCompleted.IsValid())
	assert.False(t, ReservationStatus("archived").IsValid())
	assert.False(t, ReservationStatus("").IsValid())
}
