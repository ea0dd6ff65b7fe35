package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
	byDate       []*domain.Reservation
	deletedID    int64
	deleteErr    error
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.Reservation, error) {
	return f.byDate, nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func sampleReservation(t *testing.T, id int64, startSlot string) *domain.Reservation {
	t.Helper()
	start, err := domain.ToAbsoluteTime("2025-10-15", types.TimeString(startSlot))
	require.NoError(t, err)
	return &domain.Reservation{
		ID:              id,
		SpecialistID:    10,
		ReservationDate: domain.ReservationDateOf(start),
		StartTime:       start,
		EndTime:         domain.AddMinutes(start, 60),
		DurationMinutes: 60,
		Services:        []domain.ServiceRef{{ID: 1, Name: "Стрижка", Color: "#ff0000"}},
	}
}

func TestGetByID(t *testing.T) {
	res := sampleReservation(t, 1, "09:30")
	svc := NewService(&fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{1: res},
	}, noopLogger{})

	got, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "2025-10-15", got.Date)
	assert.Equal(t, "09:30", got.StartSlot)
	require.Len(t, got.Services, 1)
	assert.Equal(t, "Стрижка", got.Services[0].Name)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeReservationRepo{reservations: map[int64]*domain.Reservation{}}, noopLogger{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetDaySchedule(t *testing.T) {
	svc := NewService(&fakeReservationRepo{
		byDate: []*domain.Reservation{
			sampleReservation(t, 1, "09:00"),
			sampleReservation(t, 2, "11:30"),
		},
	}, noopLogger{})

	got, err := svc.GetDaySchedule(context.Background(), "2025-10-15")
	require.NoError(t, err)

	assert.Equal(t, "2025-10-15", got.Date)

	// Сетка слотов фиксированная, не зависит от броней
	require.Len(t, got.Slots, 25)
	assert.Equal(t, "08:00", got.Slots[0])
	assert.Equal(t, "20:00", got.Slots[24])

	require.Len(t, got.Reservations, 2)
	assert.Equal(t, "09:00", got.Reservations[0].StartSlot)
	assert.Equal(t, "11:30", got.Reservations[1].StartSlot)
}

func TestGetDaySchedule_EmptyDay(t *testing.T) {
	svc := NewService(&fakeReservationRepo{}, noopLogger{})

	got, err := svc.GetDaySchedule(context.Background(), "2025-10-15")
	require.NoError(t, err)

	require.Len(t, got.Slots, 25)
	assert.Empty(t, got.Reservations)
}

func TestGetDaySchedule_InvalidDate(t *testing.T) {
	svc := NewService(&fakeReservationRepo{}, noopLogger{})

	_, err := svc.GetDaySchedule(context.Background(), "15.10.2025")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	repo := &fakeReservationRepo{}
	svc := NewService(repo, noopLogger{})

	err := svc.Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), repo.deletedID)
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(&fakeReservationRepo{deleteErr: reservationRepo.ErrReservationNotFound}, noopLogger{})

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
