package move_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	specialistRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeReservationRepo struct {
	reservations  map[int64]*domain.Reservation
	overlapExists bool
	updatedWith   *domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (f *fakeReservationRepo) ListByDate(_ context.Context, date time.Time) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range f.reservations {
		if res.ReservationDate.Equal(date) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, res *domain.Reservation) error {
	f.updatedWith = res
	return nil
}

func (f *fakeReservationRepo) ExistsOverlapping(_ context.Context, _ int64, _ time.Time, _, _ time.Time, _ *int64) (bool, error) {
	return f.overlapExists, nil
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

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedTimeProvider возвращает заранее заданный момент времени
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const testDate = "2025-10-15"

func mustAbs(t *testing.T, date, slot string) time.Time {
	t.Helper()
	ts, err := domain.ToAbsoluteTime(date, types.TimeString(slot))
	require.NoError(t, err)
	return ts
}

func storedReservation(t *testing.T, id, specialistID int64, startSlot string, durationMin int) *domain.Reservation {
	t.Helper()
	start := mustAbs(t, testDate, startSlot)
	return &domain.Reservation{
		ID:              id,
		SpecialistID:    specialistID,
		ReservationDate: domain.ReservationDateOf(start),
		StartTime:       start,
		EndTime:         domain.AddMinutes(start, durationMin),
		DurationMinutes: durationMin,
		Services:        []domain.ServiceRef{{ID: 1, Name: "Стрижка", Color: "#ff0000"}},
	}
}

func newUseCase(t *testing.T, resRepo *fakeReservationRepo, specRepo *fakeSpecialistRepo, nowSlot string) *UseCase {
	t.Helper()
	uc := NewUseCase(resRepo, specRepo, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: mustAbs(t, testDate, nowSlot)}
	return uc
}

func TestExecute_MoveToFreeSlot(t *testing.T) {
	resRepo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{
			1: storedReservation(t, 1, 10, "09:00", 60),
		},
	}
	uc := newUseCase(t, resRepo, &fakeSpecialistRepo{}, "08:00")

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1, SpecialistID: 10, Date: testDate, Slot: "14:00",
	})
	require.NoError(t, err)

	assert.True(t, resp.Moved)
	assert.Equal(t, mustAbs(t, testDate, "14:00"), resp.StartTime)
	// Длительность и услуги взяты из сохраненной брони
	assert.Equal(t, mustAbs(t, testDate, "15:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, int64(1), resp.Services[0].ID)

	require.NotNil(t, resRepo.updatedWith)
	assert.Equal(t, mustAbs(t, testDate, "14:00"), resRepo.updatedWith.StartTime)
}

func TestExecute_MoveToOtherSpecialist(t *testing.T) {
	resRepo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{
			1: storedReservation(t, 1, 10, "09:00", 60),
		},
	}
	uc := newUseCase(t, resRepo, &fakeSpecialistRepo{}, "08:00")

	// Тот же слот, но другая колонка - это перенос, а не no-op
	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1, SpecialistID: 20, Date: testDate, Slot: "09:00",
	})
	require.NoError(t, err)

	assert.True(t, resp.Moved)
	assert.Equal(t, int64(20), resp.SpecialistID)
}

func TestExecute_MoveToAnotherDay(t *testing.T) {
	resRepo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{
			1: storedReservation(t, 1, 10, "09:00", 60),
		},
	}
	uc := newUseCase(t, resRepo, &fakeSpecialistRepo{}, "08:00")

	// Та же метка слота и тот же специалист, но другая дата - это перенос,
	// а не no-op на своем слоте
	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1, SpecialistID: 10, Date: "2025-10-16", Slot: "09:00",
	})
	require.NoError(t, err)

	assert.True(t, resp.Moved)
	assert.Equal(t, mustAbs(t, "2025-10-16", "09:00"), resp.StartTime)
	assert.Equal(t, domain.ReservationDateOf(mustAbs(t, "2025-10-16", "09:00")), resp.ReservationDate)

	require.NotNil(t, resRepo.updatedWith)
	assert.Equal(t, mustAbs(t, "2025-10-16", "09:00"), resRepo.updatedWith.StartTime)
}

func TestExecute_SameSlotIsNoOp(t *testing.T) {
	resRepo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{
			1: storedReservation(t, 1, 10, "09:00", 60),
		},
	}
	uc := newUseCase(t, resRepo, &fakeSpecialistRepo{}, "08:00")

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1, SpecialistID: 10, Date: testDate, Slot: "09:00",
	})
	require.NoError(t, err)

	// Успех без записи: состояние не изменилось
	assert.False(t, resp.Moved)
	assert.Equal(t, mustAbs(t, testDate, "09:00"), resp.StartTime)
	assert.Nil(t, resRepo.updatedWith)
}

func TestExecute_SlotInPast(t *testing.T) {
	resRepo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{
			1: storedReservation(t, 1, 10, "14:00", 60),
		},
	}
	uc := newUseCase(t, resRepo, &fakeSpecialistRepo{}, "12:00")

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1, SpecialistID: 10, Date: testDate, Slot: "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotInPast)
	assert.Nil(t, resRepo.updatedWith)
}

func TestExecute_OverlapConflict(t *testing.T) {
	resRepo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{
			1: storedReservation(t, 1, 10, "09:00", 60),
			2: storedReservation(t, 2, 10, "11:00", 60),
		},
	}
	uc := newUseCase(t, resRepo, &fakeSpecialistRepo{}, "08:00")

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1, SpecialistID: 10, Date: testDate, Slot: "10:30",
	})
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
	assert.Nil(t, resRepo.updatedWith)
}

func TestExecute_TouchingNeighbourAllowed(t *testing.T) {
	resRepo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{
			1: storedReservation(t, 1, 10, "09:00", 60),
			2: storedReservation(t, 2, 10, "11:00", 60),
		},
	}
	uc := newUseCase(t, resRepo, &fakeSpecialistRepo{}, "08:00")

	// Касание границ соседа допустимо
	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1, SpecialistID: 10, Date: testDate, Slot: "10:00",
	})
	require.NoError(t, err)
	assert.True(t, resp.Moved)
}

func TestExecute_AuthoritativeCheckConflict(t *testing.T) {
	// Предварительная проверка по выборке дня прошла, но авторитетная
	// проверка внутри транзакции нашла конкурентную запись
	resRepo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{
			1: storedReservation(t, 1, 10, "09:00", 60),
		},
		overlapExists: true,
	}
	uc := newUseCase(t, resRepo, &fakeSpecialistRepo{}, "08:00")

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1, SpecialistID: 10, Date: testDate, Slot: "14:00",
	})
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
	assert.Nil(t, resRepo.updatedWith)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	resRepo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{}}
	uc := newUseCase(t, resRepo, &fakeSpecialistRepo{}, "08:00")

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 99, SpecialistID: 10, Date: testDate, Slot: "14:00",
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_SpecialistNotFound(t *testing.T) {
	resRepo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{}}
	uc := newUseCase(t, resRepo, &fakeSpecialistRepo{err: specialistRepo.ErrSpecialistNotFound}, "08:00")

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1, SpecialistID: 10, Date: testDate, Slot: "14:00",
	})
	assert.ErrorIs(t, err, ErrSpecialistNotFound)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "zero reservation id",
			req:     &Request{SpecialistID: 10, Date: testDate, Slot: "09:00"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad date format",
			req:     &Request{ReservationID: 1, SpecialistID: 10, Date: "15.10.2025", Slot: "09:00"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "slot off grid",
			req:     &Request{ReservationID: 1, SpecialistID: 10, Date: testDate, Slot: "09:15"},
			wantErr: ErrSlotOffGrid,
		},
		{
			name:    "slot before opening",
			req:     &Request{ReservationID: 1, SpecialistID: 10, Date: testDate, Slot: "07:30"},
			wantErr: ErrSlotOffGrid,
		},
		{
			name:    "missing slot",
			req:     &Request{ReservationID: 1, SpecialistID: 10, Date: testDate},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resRepo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{}}
			uc := newUseCase(t, resRepo, &fakeSpecialistRepo{}, "08:00")

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
