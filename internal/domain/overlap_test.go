package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func mustAbs(t *testing.T, date, slot string) time.Time {
	t.Helper()
	ts, err := ToAbsoluteTime(date, types.TimeString(slot))
	if err != nil {
		t.Fatalf("ToAbsoluteTime(%s %s): %v", date, slot, err)
	}
	return ts
}

func reservation(t *testing.T, id, specialistID int64, date, startSlot string, durationMin int) *Reservation {
	t.Helper()
	start := mustAbs(t, date, startSlot)
	return &Reservation{
		ID:              id,
		SpecialistID:    specialistID,
		ReservationDate: ReservationDateOf(start),
		StartTime:       start,
		EndTime:         AddMinutes(start, durationMin),
		DurationMinutes: durationMin,
	}
}

func TestHasOverlap(t *testing.T) {
	const date = "2025-10-15"
	existing := []*Reservation{
		reservation(t, 1, 10, date, "09:00", 60), // 09:00-10:00 у специалиста 10
		reservation(t, 2, 20, date, "09:00", 60), // тот же интервал у другого специалиста
	}

	tests := []struct {
		name      string
		spec      int64
		start     string
		durMin    int
		excludeID *int64
		want      bool
	}{
		{name: "identical interval", spec: 10, start: "09:00", durMin: 60, want: true},
		{name: "contained inside", spec: 10, start: "09:30", durMin: 30, want: true},
		{name: "partial overlap left", spec: 10, start: "08:30", durMin: 60, want: true},
		{name: "partial overlap right", spec: 10, start: "09:30", durMin: 60, want: true},
		{name: "covers existing", spec: 10, start: "08:30", durMin: 150, want: true},
		// Касание границ пересечением не считается
		{name: "touching before", spec: 10, start: "08:00", durMin: 60, want: false},
		{name: "touching after", spec: 10, start: "10:00", durMin: 60, want: false},
		{name: "fully before", spec: 10, start: "08:00", durMin: 30, want: false},
		{name: "fully after", spec: 10, start: "11:00", durMin: 30, want: false},
		// Брони других специалистов не мешают
		{name: "other specialist ignored", spec: 30, start: "09:00", durMin: 60, want: false},
		// Самоисключение при update/move
		{name: "self excluded", spec: 10, start: "09:00", durMin: 60, excludeID: int64Ptr(1), want: false},
		{name: "exclude other id still conflicts", spec: 10, start: "09:00", durMin: 60, excludeID: int64Ptr(99), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candStart := mustAbs(t, date, tt.start)
			candEnd := AddMinutes(candStart, tt.durMin)
			got := HasOverlap(existing, tt.spec, candStart, candEnd, tt.excludeID)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasOverlap_EmptyDay(t *testing.T) {
	candStart := mustAbs(t, "2025-10-15", "09:00")
	candEnd := AddMinutes(candStart, 60)
	assert.False(t, HasOverlap(nil, 10, candStart, candEnd, nil))
}

func int64Ptr(v int64) *int64 { return &v }
