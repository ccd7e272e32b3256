package create_reservation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-RestaurantService/pkg/ptr"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Фейки для изоляции use case от инфраструктуры

type fakeReservationRepo struct {
	mu            sync.Mutex
	reservations  []*domain.TableReservation
	nextID        int64
	userCount     int
	countStatuses []domain.ReservationStatus
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.TableReservation) (*domain.TableReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	created := *res
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.reservations = append(f.reservations, &created)
	return &created, nil
}

func (f *fakeReservationRepo) GetByTableAndDate(_ context.Context, tableID int64, date time.Time) ([]*domain.TableReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.TableReservation
	for _, res := range f.reservations {
		if res.TableID == tableID && res.ReservationDate.Equal(date) {
			result = append(result, res)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) CountActiveByUser(_ context.Context, _ int64, _ int64, statuses []domain.ReservationStatus, _ time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countStatuses = statuses
	return f.userCount, nil
}

type fakeTableRepo struct {
	table *domain.Table
	err   error
}

func (f *fakeTableRepo) GetByID(_ context.Context, _ int64) (*domain.Table, error) {
	return f.table, f.err
}

type fakeRestaurantRepo struct {
	restaurant *domain.Restaurant
	err        error
}

func (f *fakeRestaurantRepo) GetByID(_ context.Context, _ int64) (*domain.Restaurant, error) {
	return f.restaurant, f.err
}

type fakeSettingsRepo struct {
	settings *domain.RestaurantSettings
	err      error
}

func (f *fakeSettingsRepo) GetByRestaurant(_ context.Context, _ int64) (*domain.RestaurantSettings, error) {
	return f.settings, f.err
}

type fakeScheduleRepo struct {
	hours *domain.OpeningHours
	err   error
}

func (f *fakeScheduleRepo) GetForDay(_ context.Context, _ int64, _ time.Weekday) (*domain.OpeningHours, error) {
	return f.hours, f.err
}

// fakeTxManager сериализует транзакции мьютексом, имитируя
// последовательное выполнение конкурирующих коммитов
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
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

// Хелперы сборки окружения теста

type env struct {
	uc           *UseCase
	reservations *fakeReservationRepo
	settings     *domain.RestaurantSettings
}

func newEnv(t *testing.T) *env {
	t.Helper()

	settings := domain.DefaultSettings(1)
	settings.ReservationsNeedConfirmation = false

	reservations := &fakeReservationRepo{}

	uc := NewUseCase(
		reservations,
		&fakeTableRepo{table: &domain.Table{ID: 5, RestaurantID: 1, TableNumber: 3, Capacity: 4}},
		&fakeRestaurantRepo{restaurant: &domain.Restaurant{ID: 1, Name: "Testaurant", OwnerUserID: 100, IsActive: true}},
		&fakeSettingsRepo{settings: settings},
		&fakeScheduleRepo{hours: &domain.OpeningHours{OpenTime: "10:00", CloseTime: "23:00"}},
		&fakeTxManager{},
		nil,
		nil,
		nil,
		noopLogger{},
	)
	// Фиксированное "сейчас", чтобы окно бронирования было детерминированным
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}

	return &env{uc: uc, reservations: reservations, settings: settings}
}

func validRequest() *Request {
	return &Request{
		RestaurantID:   1,
		TableID:        5,
		Date:           time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime:      types.TimeString("12:00"),
		EndTime:        types.TimeString("14:00"),
		NumberOfGuests: 2,
		CustomerName:   "Анна",
		CustomerPhone:  "+79990001122",
		UserID:         ptr.Ptr(int64(42)),
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	e := newEnv(t)

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, types.TimeString("12:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("14:00"), resp.EndTime)
}

func TestExecute_PendingWhenConfirmationRequired(t *testing.T) {
	e := newEnv(t)
	e.settings.ReservationsNeedConfirmation = true

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_Conflict(t *testing.T) {
	e := newEnv(t)

	first := validRequest()
	_, err := e.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Пересечение 13:00-15:00 с занятым 12:00-14:00
	second := validRequest()
	second.StartTime = "13:00"
	second.EndTime = "15:00"
	_, err = e.uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrTableNotAvailable)

	// Касание 14:00-16:00 не конфликтует
	third := validRequest()
	third.StartTime = "14:00"
	third.EndTime = "16:00"
	_, err = e.uc.Execute(context.Background(), third)
	assert.NoError(t, err)
}

func TestExecute_CancelledDoesNotBlock(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Отменяем первую бронь напрямую в хранилище
	e.reservations.reservations[0].Status = domain.StatusCancelled

	second := validRequest()
	_, err = e.uc.Execute(context.Background(), second)
	assert.NoError(t, err)
}

func TestExecute_OutsideOpeningHours(t *testing.T) {
	e := newEnv(t)

	req := validRequest()
	req.StartTime = "08:00"
	req.EndTime = "09:00"
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideOpeningHours)
}

func TestExecute_ClosedDay(t *testing.T) {
	e := newEnv(t)
	e.uc.scheduleRepo = &fakeScheduleRepo{err: scheduleRepo.ErrHoursNotFound}

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOutsideOpeningHours)
}

func TestExecute_InvalidTimeRange(t *testing.T) {
	e := newEnv(t)

	req := validRequest()
	req.StartTime = "14:00"
	req.EndTime = "12:00"
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	req = validRequest()
	req.EndTime = req.StartTime
	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_DurationBounds(t *testing.T) {
	e := newEnv(t)

	// Короче минимума (30 минут)
	req := validRequest()
	req.StartTime = "12:00"
	req.EndTime = "12:15"
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	// Длиннее максимума (240 минут)
	req = validRequest()
	req.StartTime = "12:00"
	req.EndTime = "17:00"
	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_AdvanceWindow(t *testing.T) {
	e := newEnv(t)

	// Начало раньше now + MinAdvanceBookingMinutes (60 минут от 10:00 того же дня)
	req := validRequest()
	req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	req.StartTime = "10:30"
	req.EndTime = "11:30"
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideBookingWindow)

	// Дальше чем MaxAdvanceBookingDays (90 дней)
	req = validRequest()
	req.Date = time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)
	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideBookingWindow)
}

func TestExecute_PartySize(t *testing.T) {
	e := newEnv(t)

	// Столик на 4 места
	req := validRequest()
	req.NumberOfGuests = 6
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPartyExceedsCapacity)

	// Выше максимума настроек (20)
	req = validRequest()
	req.NumberOfGuests = 25
	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPartySize)
}

func TestExecute_CustomerPhoneLength(t *testing.T) {
	e := newEnv(t)

	// Ровно на границе (32 символа) — проходит
	req := validRequest()
	req.CustomerPhone = strings.Repeat("7", domain.MaxCustomerPhoneLength)
	_, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Длиннее границы — ошибка валидации
	req = validRequest()
	req.CustomerPhone = strings.Repeat("7", domain.MaxCustomerPhoneLength+1)
	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UserLimit(t *testing.T) {
	e := newEnv(t)
	e.settings.ReservationsPerUserLimit = 2
	e.reservations.userCount = 2

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserLimitExceeded)

	// Гостевая бронь без пользователя лимитом не ограничена
	guest := validRequest()
	guest.UserID = nil
	_, err = e.uc.Execute(context.Background(), guest)
	assert.NoError(t, err)
}

// Режим limit_counts_pending определяет набор статусов, уходящий в подсчёт лимита
func TestExecute_UserLimitCountedStatuses(t *testing.T) {
	e := newEnv(t)
	e.settings.ReservationsPerUserLimit = 5

	e.settings.LimitCountsPending = true
	_, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed},
		e.reservations.countStatuses)

	e.settings.LimitCountsPending = false
	second := validRequest()
	second.StartTime = "15:00"
	second.EndTime = "17:00"
	_, err = e.uc.Execute(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, []domain.ReservationStatus{domain.StatusConfirmed}, e.reservations.countStatuses)
}

func TestExecute_InactiveRestaurant(t *testing.T) {
	e := newEnv(t)
	e.uc.restaurantRepo = &fakeRestaurantRepo{
		restaurant: &domain.Restaurant{ID: 1, OwnerUserID: 100, IsActive: false},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRestaurantInactive)
}

func TestExecute_TableFromAnotherRestaurant(t *testing.T) {
	e := newEnv(t)
	e.uc.tableRepo = &fakeTableRepo{
		table: &domain.Table{ID: 5, RestaurantID: 2, TableNumber: 3, Capacity: 4},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTableNotFound)
}

// exhaustedTxManager имитирует конфликт сериализации, не разрешившийся
// за все повторы менеджера транзакций
type exhaustedTxManager struct{}

func (exhaustedTxManager) DoSerializable(_ context.Context, _ func(ctx context.Context) error) error {
	return fmt.Errorf("%w: %v", txmanager.ErrRetriesExhausted,
		&pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"})
}

// Исчерпание повторов сериализации — конфликт бронирования, а не внутренняя ошибка
func TestExecute_SerializationRetriesExhaustedIsConflict(t *testing.T) {
	e := newEnv(t)
	e.uc.txManager = exhaustedTxManager{}

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTableNotAvailable)
}

// Конкурирующие создания на одно окно: ровно одно должно пройти
func TestExecute_ConcurrentCommits(t *testing.T) {
	e := newEnv(t)

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrTableNotAvailable)
		}
	}
	assert.Equal(t, 1, succeeded)
}
