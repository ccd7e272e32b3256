package build_availability_map

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/schedule"
	tableRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/table"
)

type fakeReservationRepo struct {
	reservations []*domain.TableReservation
}

func (f *fakeReservationRepo) GetByTableAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.TableReservation, error) {
	return f.reservations, nil
}

type fakeTableRepo struct {
	table *domain.Table
	err   error
}

func (f *fakeTableRepo) GetByID(_ context.Context, _ int64) (*domain.Table, error) {
	return f.table, f.err
}

type fakeScheduleRepo struct {
	hours *domain.OpeningHours
	err   error
}

func (f *fakeScheduleRepo) GetForDay(_ context.Context, _ int64, _ time.Weekday) (*domain.OpeningHours, error) {
	return f.hours, f.err
}

type fakeMapCache struct {
	stored map[string]string
	gets   int
	sets   int
}

func newFakeMapCache() *fakeMapCache {
	return &fakeMapCache{stored: make(map[string]string)}
}

func (f *fakeMapCache) key(tableID int64, date time.Time) string {
	return date.Format(domain.DateFormat) + "#" + strconv.FormatInt(tableID, 10)
}

func (f *fakeMapCache) Get(_ context.Context, tableID int64, date time.Time) (string, error) {
	f.gets++
	if v, ok := f.stored[f.key(tableID, date)]; ok {
		return v, nil
	}
	return "", errors.New("miss")
}

func (f *fakeMapCache) Set(_ context.Context, tableID int64, date time.Time, availabilityMap string) {
	f.sets++
	f.stored[f.key(tableID, date)] = availabilityMap
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testDate() time.Time {
	return time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
}

func newUseCase(reservations []*domain.TableReservation, cache MapCache) *UseCase {
	return NewUseCase(
		&fakeReservationRepo{reservations: reservations},
		&fakeTableRepo{table: &domain.Table{ID: 5, RestaurantID: 1, TableNumber: 3, Capacity: 4}},
		&fakeScheduleRepo{hours: &domain.OpeningHours{OpenTime: "10:00", CloseTime: "22:00"}},
		cache,
		noopLogger{},
	)
}

func TestExecute_MapShape(t *testing.T) {
	uc := newUseCase(nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{TableID: 5, Date: testDate()})
	require.NoError(t, err)

	require.Len(t, resp.AvailabilityMap, domain.SlotsPerDay)
	assert.Equal(t, int64(5), resp.TableID)
	assert.Equal(t, int64(1), resp.RestaurantID)
	assert.Equal(t, testDate(), resp.Date)

	// Вне рабочих часов 10:00-22:00 всё занято
	assert.Equal(t, strings.Repeat("0", 40), resp.AvailabilityMap[:40])
	assert.Equal(t, strings.Repeat("0", 8), resp.AvailabilityMap[88:])
	assert.Equal(t, strings.Repeat("1", 48), resp.AvailabilityMap[40:88])
}

func TestExecute_ReservationBlocksSlots(t *testing.T) {
	reservations := []*domain.TableReservation{
		{
			ID:              10,
			TableID:         5,
			ReservationDate: testDate(),
			StartTime:       "12:00",
			EndTime:         "14:00",
			Status:          domain.StatusConfirmed,
		},
	}
	uc := newUseCase(reservations, nil)

	resp, err := uc.Execute(context.Background(), &Request{TableID: 5, Date: testDate()})
	require.NoError(t, err)

	// Слоты 48-55 (12:00-14:00) заняты, соседние свободны
	assert.Equal(t, "1", string(resp.AvailabilityMap[47]))
	assert.Equal(t, strings.Repeat("0", 8), resp.AvailabilityMap[48:56])
	assert.Equal(t, "1", string(resp.AvailabilityMap[56]))
}

func TestExecute_CacheHitSkipsBuild(t *testing.T) {
	cache := newFakeMapCache()
	uc := newUseCase(nil, cache)

	first, err := uc.Execute(context.Background(), &Request{TableID: 5, Date: testDate()})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Ломаем расписание: при повторном запросе карта должна прийти
	// из кэша, а не строиться заново
	uc.scheduleRepo = &fakeScheduleRepo{err: errors.New("db down")}

	second, err := uc.Execute(context.Background(), &Request{TableID: 5, Date: testDate()})
	require.NoError(t, err)
	assert.Equal(t, first.AvailabilityMap, second.AvailabilityMap)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 2, cache.gets)
}

func TestExecute_NoCacheConfigured(t *testing.T) {
	uc := newUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &Request{TableID: 5, Date: testDate()})
	assert.NoError(t, err)
}

func TestExecute_ClosedDayAllBlocked(t *testing.T) {
	uc := newUseCase(nil, nil)
	uc.scheduleRepo = &fakeScheduleRepo{err: scheduleRepo.ErrHoursNotFound}

	resp, err := uc.Execute(context.Background(), &Request{TableID: 5, Date: testDate()})
	require.NoError(t, err)
	assert.Equal(t, domain.EmptyDailyMap(), resp.AvailabilityMap)
}

func TestExecute_TableNotFound(t *testing.T) {
	uc := newUseCase(nil, nil)
	uc.tableRepo = &fakeTableRepo{err: tableRepo.ErrTableNotFound}

	_, err := uc.Execute(context.Background(), &Request{TableID: 99, Date: testDate()})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &Request{TableID: 0, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TableID: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
