package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func TestEvaluateDrop(t *testing.T) {
	const date = "2025-10-15"
	now := mustAbs(t, date, "08:00")

	moved := reservation(t, 1, 10, date, "09:00", 60) // перетаскиваемая бронь
	day := []*Reservation{
		moved,
		reservation(t, 2, 10, date, "11:00", 60), // сосед того же специалиста
		reservation(t, 3, 20, date, "12:00", 60), // бронь другого специалиста
	}

	tests := []struct {
		name       string
		targetSpec int64
		targetSlot string
		wantValid  bool
		wantReason DropReason
	}{
		{name: "same slot same specialist", targetSpec: 10, targetSlot: "09:00", wantReason: DropReasonSameSlot},
		{name: "same slot other specialist allowed", targetSpec: 20, targetSlot: "09:00", wantValid: true},
		{name: "overlap with neighbour", targetSpec: 10, targetSlot: "10:30", wantReason: DropReasonOverlap},
		{name: "touching neighbour allowed", targetSpec: 10, targetSlot: "10:00", wantValid: true},
		{name: "overlap on other specialist", targetSpec: 20, targetSlot: "11:30", wantReason: DropReasonOverlap},
		{name: "free slot", targetSpec: 10, targetSlot: "14:00", wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateDrop(date, tt.targetSpec, types.TimeString(tt.targetSlot), moved, day, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

func TestEvaluateDrop_SameSlotOtherDay(t *testing.T) {
	now := mustAbs(t, "2025-10-15", "08:00")

	moved := reservation(t, 1, 10, "2025-10-15", "09:00", 60)

	// Та же метка слота, тот же специалист, но другой день - перенос
	got, err := EvaluateDrop("2025-10-16", 10, types.TimeString("09:00"), moved, nil, now)
	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.NotEqual(t, DropReasonSameSlot, got.Reason)
}

func TestEvaluateDrop_Past(t *testing.T) {
	const date = "2025-10-15"
	now := mustAbs(t, date, "12:00")

	moved := reservation(t, 1, 10, date, "14:00", 60)

	got, err := EvaluateDrop(date, 10, types.TimeString("10:00"), moved, []*Reservation{moved}, now)
	require.NoError(t, err)
	assert.False(t, got.Valid)
	assert.Equal(t, DropReasonPast, got.Reason)

	// Слот ровно "сейчас" прошлым не считается
	got, err = EvaluateDrop(date, 10, types.TimeString("12:00"), moved, []*Reservation{moved}, now)
	require.NoError(t, err)
	assert.True(t, got.Valid)
}

func TestEvaluateDrop_RuleOrder(t *testing.T) {
	const date = "2025-10-15"
	// Все слоты дня уже в прошлом
	now := mustAbs(t, "2025-10-16", "08:00")

	moved := reservation(t, 1, 10, date, "09:00", 60)
	day := []*Reservation{moved, reservation(t, 2, 10, date, "10:00", 60)}

	// same_slot побеждает past: возврат на свое место - no-op, а не ошибка
	got, err := EvaluateDrop(date, 10, types.TimeString("09:00"), moved, day, now)
	require.NoError(t, err)
	assert.Equal(t, DropReasonSameSlot, got.Reason)

	// past побеждает overlap
	got, err = EvaluateDrop(date, 10, types.TimeString("10:00"), moved, day, now)
	require.NoError(t, err)
	assert.Equal(t, DropReasonPast, got.Reason)
}
