package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func TestSlotGrid(t *testing.T) {
	grid := SlotGrid()

	// 08:00..20:00 с шагом 30 минут, включительно
	require.Len(t, grid, 25)
	assert.Equal(t, types.TimeString("08:00"), grid[0])
	assert.Equal(t, types.TimeString("08:30"), grid[1])
	assert.Equal(t, types.TimeString("20:00"), grid[24])

	// Сетка строго возрастает
	for i := 1; i < len(grid); i++ {
		assert.True(t, grid[i-1].IsBefore(grid[i]))
	}
}

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		input types.TimeString
		want  types.TimeString
	}{
		{input: "09:00", want: "09:00"}, // уже на сетке
		{input: "09:10", want: "09:00"}, // вниз
		{input: "09:15", want: "09:30"}, // середина округляется вверх
		{input: "09:20", want: "09:30"}, // вверх
		{input: "09:44", want: "09:30"},
		{input: "09:45", want: "10:00"},
		{input: "07:10", want: "08:00"}, // раньше открытия - к первому слоту
		{input: "20:15", want: "20:00"}, // край дня прижимается к последнему слоту
		{input: "23:59", want: "20:00"},
		{input: "00:00", want: "08:00"},
	}

	for _, tt := range tests {
		got, err := SnapToGrid(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %s", tt.input)
	}
}

func TestSnapToGrid_Idempotent(t *testing.T) {
	// Повторное прищелкивание ничего не меняет
	for _, slot := range SlotGrid() {
		snapped, err := SnapToGrid(slot)
		require.NoError(t, err)
		assert.Equal(t, slot, snapped)
	}
}

func TestIsOnGrid(t *testing.T) {
	assert.True(t, IsOnGrid("08:00"))
	assert.True(t, IsOnGrid("13:30"))
	assert.True(t, IsOnGrid("20:00"))

	assert.False(t, IsOnGrid("07:30")) // раньше открытия
	assert.False(t, IsOnGrid("20:30")) // позже закрытия
	assert.False(t, IsOnGrid("09:15")) // не кратно 30
	assert.False(t, IsOnGrid("bad"))
}

func TestToAbsoluteTime(t *testing.T) {
	got, err := ToAbsoluteTime("2025-10-15", "09:30")
	require.NoError(t, err)

	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.October, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())

	// Метка слота восстанавливается из абсолютного времени
	assert.Equal(t, types.TimeString("09:30"), ToTimeOfDay(got))

	_, err = ToAbsoluteTime("2025-13-40", "09:30")
	assert.Error(t, err)

	_, err = ToAbsoluteTime("2025-10-15", "25:00")
	assert.Error(t, err)
}

func TestAddMinutes(t *testing.T) {
	start, err := ToAbsoluteTime("2025-10-15", "09:30")
	require.NoError(t, err)

	end := AddMinutes(start, 90)
	assert.Equal(t, types.TimeString("11:00"), ToTimeOfDay(end))
}

func TestIsSlotInPast(t *testing.T) {
	now, err := ToAbsoluteTime("2025-10-15", "12:00")
	require.NoError(t, err)

	past, err := IsSlotInPast("2025-10-15", "11:30", now)
	require.NoError(t, err)
	assert.True(t, past)

	// Слот ровно в текущий момент прошлым не считается
	past, err = IsSlotInPast("2025-10-15", "12:00", now)
	require.NoError(t, err)
	assert.False(t, past)

	past, err = IsSlotInPast("2025-10-15", "12:30", now)
	require.NoError(t, err)
	assert.False(t, past)

	// Вчерашний день целиком в прошлом
	past, err = IsSlotInPast("2025-10-14", "19:00", now)
	require.NoError(t, err)
	assert.True(t, past)

	_, err = IsSlotInPast("garbage", "12:00", now)
	assert.Error(t, err)
}

func TestReservationDateOf(t *testing.T) {
	start := time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)
	date := ReservationDateOf(start)

	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), date)
}

func TestToday(t *testing.T) {
	now := time.Date(2025, 10, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2025-10-15", Today(now))
}
