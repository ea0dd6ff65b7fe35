package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/service"
	specialistRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/specialist"
)

type fakeReservationRepo struct {
	overlapExists bool
	overlapErr    error
	createdWith   *domain.Reservation
	linkedIDs     []int64
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.createdWith = res
	created := *res
	created.ID = 42
	return &created, nil
}

func (f *fakeReservationRepo) ReplaceServiceLinks(_ context.Context, _ int64, serviceIDs []int64) error {
	f.linkedIDs = serviceIDs
	return nil
}

func (f *fakeReservationRepo) ExistsOverlapping(_ context.Context, _ int64, _ time.Time, _, _ time.Time, _ *int64) (bool, error) {
	return f.overlapExists, f.overlapErr
}

type fakeSpecialistRepo struct {
	err error
}

func (f *fakeSpecialistRepo) GetByID(_ context.Context, id int64) (*domain.Specialist, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Specialist{ID: id, FirstName: "Анна"}, nil
}

type fakeServiceRepo struct {
	err error
}

func (f *fakeServiceRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	services := make([]*domain.Service, len(ids))
	for i, id := range ids {
		services[i] = &domain.Service{ID: id, Name: "Стрижка", Color: "#ff0000"}
	}
	return services, nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		SpecialistID:    10,
		StartTime:       time.Date(2025, 10, 15, 9, 30, 0, 0, time.Local),
		DurationMinutes: 60,
		ServiceIDs:      []int64{1, 2},
	}
}

func newUseCase(resRepo *fakeReservationRepo, specRepo *fakeSpecialistRepo, svcRepo *fakeServiceRepo) *UseCase {
	return NewUseCase(resRepo, specRepo, svcRepo, &fakeTxManager{}, noopLogger{})
}

func TestExecute_Success(t *testing.T) {
	resRepo := &fakeReservationRepo{}
	uc := newUseCase(resRepo, &fakeSpecialistRepo{}, &fakeServiceRepo{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(10), resp.SpecialistID)
	assert.Equal(t, 60, resp.DurationMinutes)

	// Производные поля выведены из startTime
	assert.Equal(t, resp.StartTime.Add(60*time.Minute), resp.EndTime)
	assert.Equal(t, domain.ReservationDateOf(resp.StartTime), resp.ReservationDate)

	// Порядок услуг сохранен
	require.Len(t, resp.Services, 2)
	assert.Equal(t, int64(1), resp.Services[0].ID)
	assert.Equal(t, int64(2), resp.Services[1].ID)
	assert.Equal(t, []int64{1, 2}, resRepo.linkedIDs)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "zero specialist", mutate: func(r *Request) { r.SpecialistID = 0 }},
		{name: "zero start time", mutate: func(r *Request) { r.StartTime = time.Time{} }},
		{name: "zero duration", mutate: func(r *Request) { r.DurationMinutes = 0 }},
		{name: "negative duration", mutate: func(r *Request) { r.DurationMinutes = -30 }},
		{name: "duration not multiple of slot", mutate: func(r *Request) { r.DurationMinutes = 45 }},
		{name: "no services", mutate: func(r *Request) { r.ServiceIDs = nil }},
		{name: "duplicate services", mutate: func(r *Request) { r.ServiceIDs = []int64{1, 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resRepo := &fakeReservationRepo{}
			uc := newUseCase(resRepo, &fakeSpecialistRepo{}, &fakeServiceRepo{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			// До хранилища дело не дошло
			assert.Nil(t, resRepo.createdWith)
		})
	}
}

func TestExecute_SpecialistNotFound(t *testing.T) {
	uc := newUseCase(&fakeReservationRepo{}, &fakeSpecialistRepo{err: specialistRepo.ErrSpecialistNotFound}, &fakeServiceRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSpecialistNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newUseCase(&fakeReservationRepo{}, &fakeSpecialistRepo{}, &fakeServiceRepo{err: serviceRepo.ErrServiceNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_TimeSlotConflict(t *testing.T) {
	resRepo := &fakeReservationRepo{overlapExists: true}
	uc := newUseCase(resRepo, &fakeSpecialistRepo{}, &fakeServiceRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeSlotConflict)

	// Конфликт обнаружен до записи
	assert.Nil(t, resRepo.createdWith)
}

func TestExecute_DurationMultipleOfSlotAccepted(t *testing.T) {
	for _, dur := range []int{30, 60, 90, 120} {
		resRepo := &fakeReservationRepo{}
		uc := newUseCase(resRepo, &fakeSpecialistRepo{}, &fakeServiceRepo{})

		req := validRequest()
		req.DurationMinutes = dur

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err, "duration %d", dur)
		assert.Equal(t, dur, resp.DurationMinutes)
	}
}
