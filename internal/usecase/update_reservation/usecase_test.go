package update_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
)

type fakeReservationRepo struct {
	stored        *domain.Reservation
	overlapExists bool
	excludeID     *int64
	updatedWith   *domain.Reservation
	linkedIDs     []int64
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if f.stored == nil || f.stored.ID != id {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *f.stored
	return &copied, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, res *domain.Reservation) error {
	f.updatedWith = res
	return nil
}

func (f *fakeReservationRepo) ReplaceServiceLinks(_ context.Context, _ int64, serviceIDs []int64) error {
	f.linkedIDs = serviceIDs
	return nil
}

func (f *fakeReservationRepo) ExistsOverlapping(_ context.Context, _ int64, _ time.Time, _, _ time.Time, excludeID *int64) (bool, error) {
	f.excludeID = excludeID
	return f.overlapExists, nil
}

type fakeSpecialistRepo struct{}

func (f *fakeSpecialistRepo) GetByID(_ context.Context, id int64) (*domain.Specialist, error) {
	return &domain.Specialist{ID: id, FirstName: "Анна"}, nil
}

type fakeServiceRepo struct{}

func (f *fakeServiceRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Service, error) {
	services := make([]*domain.Service, len(ids))
	for i, id := range ids {
		services[i] = &domain.Service{ID: id, Name: "Стрижка", Color: "#ff0000"}
	}
	return services, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func storedReservation() *domain.Reservation {
	start := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)
	return &domain.Reservation{
		ID:              1,
		SpecialistID:    10,
		ReservationDate: domain.ReservationDateOf(start),
		StartTime:       start,
		EndTime:         domain.AddMinutes(start, 60),
		DurationMinutes: 60,
		Services:        []domain.ServiceRef{{ID: 1, Name: "Стрижка", Color: "#ff0000"}},
	}
}

func validRequest() *Request {
	return &Request{
		ReservationID:   1,
		SpecialistID:    20,
		StartTime:       time.Date(2025, 10, 15, 11, 30, 0, 0, time.Local),
		DurationMinutes: 90,
		ServiceIDs:      []int64{2, 3},
	}
}

func TestExecute_Success(t *testing.T) {
	resRepo := &fakeReservationRepo{stored: storedReservation()}
	uc := NewUseCase(resRepo, &fakeSpecialistRepo{}, &fakeServiceRepo{}, &fakeTxManager{}, noopLogger{})

	req := validRequest()
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(20), resp.SpecialistID)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, req.StartTime.Add(90*time.Minute), resp.EndTime)
	assert.Equal(t, domain.ReservationDateOf(req.StartTime), resp.ReservationDate)

	// Услуги заменены целиком, порядок сохранен
	require.Len(t, resp.Services, 2)
	assert.Equal(t, int64(2), resp.Services[0].ID)
	assert.Equal(t, []int64{2, 3}, resRepo.linkedIDs)

	// Собственная запись исключена из проверки пересечения
	require.NotNil(t, resRepo.excludeID)
	assert.Equal(t, int64(1), *resRepo.excludeID)
}

func TestExecute_NotFound(t *testing.T) {
	resRepo := &fakeReservationRepo{}
	uc := NewUseCase(resRepo, &fakeSpecialistRepo{}, &fakeServiceRepo{}, &fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.Nil(t, resRepo.updatedWith)
}

func TestExecute_Conflict(t *testing.T) {
	resRepo := &fakeReservationRepo{stored: storedReservation(), overlapExists: true}
	uc := NewUseCase(resRepo, &fakeSpecialistRepo{}, &fakeServiceRepo{}, &fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
	assert.Nil(t, resRepo.updatedWith)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "zero reservation id", mutate: func(r *Request) { r.ReservationID = 0 }},
		{name: "duration not multiple of slot", mutate: func(r *Request) { r.DurationMinutes = 45 }},
		{name: "no services", mutate: func(r *Request) { r.ServiceIDs = nil }},
		{name: "duplicate services", mutate: func(r *Request) { r.ServiceIDs = []int64{2, 2} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resRepo := &fakeReservationRepo{stored: storedReservation()}
			uc := NewUseCase(resRepo, &fakeSpecialistRepo{}, &fakeServiceRepo{}, &fakeTxManager{}, noopLogger{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, resRepo.updatedWith)
		})
	}
}
