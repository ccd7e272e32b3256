package find_available_tables

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

type fakeReservationRepo struct {
	reservations []*domain.TableReservation
}

func (f *fakeReservationRepo) GetByRestaurantWithFilter(_ context.Context, _ domain.ReservationsFilter) ([]*domain.TableReservation, error) {
	return f.reservations, nil
}

// fakeTableRepo отдаёт столики так же, как хранилище: отфильтрованные
// по minCapacity и отсортированные по вместимости и номеру
type fakeTableRepo struct {
	tables []*domain.Table
}

func (f *fakeTableRepo) GetByRestaurant(_ context.Context, _ int64, minCapacity *int) ([]*domain.Table, error) {
	var result []*domain.Table
	for _, t := range f.tables {
		if minCapacity == nil || t.Capacity >= *minCapacity {
			result = append(result, t)
		}
	}
	for i := 1; i < len(result); i++ {
		for j := i; j > 0; j-- {
			a, b := result[j-1], result[j]
			if a.Capacity > b.Capacity || (a.Capacity == b.Capacity && a.TableNumber > b.TableNumber) {
				result[j-1], result[j] = b, a
			}
		}
	}
	return result, nil
}

type fakeRestaurantRepo struct {
	restaurant *domain.Restaurant
}

func (f *fakeRestaurantRepo) GetByID(_ context.Context, _ int64) (*domain.Restaurant, error) {
	return f.restaurant, nil
}

type fakeSettingsRepo struct {
	settings *domain.RestaurantSettings
}

func (f *fakeSettingsRepo) GetByRestaurant(_ context.Context, _ int64) (*domain.RestaurantSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

type fakeScheduleRepo struct {
	hours *domain.OpeningHours
	err   error
}

func (f *fakeScheduleRepo) GetForDay(_ context.Context, _ int64, _ time.Weekday) (*domain.OpeningHours, error) {
	return f.hours, f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testDate() time.Time {
	return time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
}

func newUseCase(tables []*domain.Table, reservations []*domain.TableReservation) *UseCase {
	uc := NewUseCase(
		&fakeReservationRepo{reservations: reservations},
		&fakeTableRepo{tables: tables},
		&fakeRestaurantRepo{restaurant: &domain.Restaurant{ID: 1, OwnerUserID: 100, IsActive: true}},
		&fakeSettingsRepo{},
		&fakeScheduleRepo{hours: &domain.OpeningHours{OpenTime: "10:00", CloseTime: "23:00"}},
		noopLogger{},
	)
	// Фиксированное "сейчас" за день до запрошенной даты
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func fourTables() []*domain.Table {
	return []*domain.Table{
		{ID: 1, RestaurantID: 1, TableNumber: 1, Capacity: 2},
		{ID: 2, RestaurantID: 1, TableNumber: 2, Capacity: 4},
		{ID: 3, RestaurantID: 1, TableNumber: 3, Capacity: 6},
		{ID: 4, RestaurantID: 1, TableNumber: 4, Capacity: 3},
	}
}

func request(party int) *Request {
	return &Request{
		RestaurantID: 1,
		Date:         testDate(),
		StartTime:    "12:00",
		EndTime:      "14:00",
		PartySize:    party,
	}
}

// Столики вместимости [2 4 6 3], компания из 3: результат [3 4 6],
// самый тесный подходящий столик первым
func TestExecute_CapacityFirstOrdering(t *testing.T) {
	uc := newUseCase(fourTables(), nil)

	resp, err := uc.Execute(context.Background(), request(3))
	require.NoError(t, err)
	require.Len(t, resp.Tables, 3)

	capacities := []int{resp.Tables[0].Capacity, resp.Tables[1].Capacity, resp.Tables[2].Capacity}
	assert.Equal(t, []int{3, 4, 6}, capacities)
	assert.Equal(t, int64(4), resp.Tables[0].TableID)
}

func TestExecute_BusyTableFiltered(t *testing.T) {
	reservations := []*domain.TableReservation{
		{
			ID:              10,
			RestaurantID:    1,
			TableID:         2,
			ReservationDate: testDate(),
			StartTime:       "13:00",
			EndTime:         "15:00",
			Status:          domain.StatusConfirmed,
		},
	}
	uc := newUseCase(fourTables(), reservations)

	resp, err := uc.Execute(context.Background(), request(3))
	require.NoError(t, err)
	require.Len(t, resp.Tables, 2)
	assert.Equal(t, []int{3, 6}, []int{resp.Tables[0].Capacity, resp.Tables[1].Capacity})
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	reservations := []*domain.TableReservation{
		{
			ID:              10,
			TableID:         2,
			ReservationDate: testDate(),
			StartTime:       "12:00",
			EndTime:         "14:00",
			Status:          domain.StatusCancelled,
		},
	}
	uc := newUseCase(fourTables(), reservations)

	resp, err := uc.Execute(context.Background(), request(3))
	require.NoError(t, err)
	assert.Len(t, resp.Tables, 3)
}

func TestExecute_TouchingWindowsDoNotConflict(t *testing.T) {
	reservations := []*domain.TableReservation{
		{
			ID:              10,
			TableID:         4,
			ReservationDate: testDate(),
			StartTime:       "14:00",
			EndTime:         "16:00",
			Status:          domain.StatusConfirmed,
		},
	}
	uc := newUseCase(fourTables(), reservations)

	resp, err := uc.Execute(context.Background(), request(3))
	require.NoError(t, err)
	assert.Len(t, resp.Tables, 3)
}

func TestExecute_NoTableFitsParty(t *testing.T) {
	uc := newUseCase(fourTables(), nil)

	resp, err := uc.Execute(context.Background(), request(10))
	require.NoError(t, err)
	assert.Empty(t, resp.Tables)
}

func TestExecute_OutsideOpeningHours(t *testing.T) {
	uc := newUseCase(fourTables(), nil)

	req := request(2)
	req.StartTime = "08:00"
	req.EndTime = "09:00"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideOpeningHours)
}

func TestExecute_ClosedDay(t *testing.T) {
	uc := newUseCase(fourTables(), nil)
	uc.scheduleRepo = &fakeScheduleRepo{err: scheduleRepo.ErrHoursNotFound}

	_, err := uc.Execute(context.Background(), request(2))
	assert.ErrorIs(t, err, ErrOutsideOpeningHours)
}

func TestExecute_InactiveRestaurant(t *testing.T) {
	uc := newUseCase(fourTables(), nil)
	uc.restaurantRepo = &fakeRestaurantRepo{
		restaurant: &domain.Restaurant{ID: 1, OwnerUserID: 100, IsActive: false},
	}

	_, err := uc.Execute(context.Background(), request(2))
	assert.ErrorIs(t, err, ErrRestaurantInactive)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(fourTables(), nil)

	req := request(0)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request(2)
	req.StartTime = "14:00"
	req.EndTime = "12:00"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_DurationBounds(t *testing.T) {
	uc := newUseCase(fourTables(), nil)

	// Короче минимума настроек
	req := request(2)
	req.EndTime = "12:15"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	// Длиннее максимума настроек
	req = request(2)
	req.EndTime = "17:00"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_AdvanceWindow(t *testing.T) {
	uc := newUseCase(fourTables(), nil)

	// Начало раньше минимального горизонта бронирования
	req := request(2)
	req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	req.StartTime = "10:30"
	req.EndTime = "11:30"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideBookingWindow)

	// Дальше максимального горизонта
	req = request(2)
	req.Date = time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideBookingWindow)
}

// Снимок доступности: тип TimeString сравнивается лексикографически,
// значения окна проходят в ответ без изменений
func TestExecute_ResponseEcho(t *testing.T) {
	uc := newUseCase(fourTables(), nil)

	resp, err := uc.Execute(context.Background(), request(2))
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("12:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("14:00"), resp.EndTime)
	assert.Equal(t, 2, resp.PartySize)
	assert.Equal(t, testDate(), resp.Date)
}
