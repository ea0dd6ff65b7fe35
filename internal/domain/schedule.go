package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Чистые функции работы с сеткой расписания и конвертации времени.
// Все функции детерминированы: текущий момент передается параметром now.

// Today returns the current calendar-local date as YYYY-MM-DD
func Today(now time.Time) string {
	return now.Format(DateFormat)
}

// SlotGrid returns the fixed ordered sequence of day slots:
// "08:00", "08:30", ..., "20:00" (25 entries, date-independent)
func SlotGrid() []types.TimeString {
	open, _ := ScheduleOpenTime.MinutesFromMidnight()
	close, _ := ScheduleCloseTime.MinutesFromMidnight()

	slots := make([]types.TimeString, 0, (close-open)/SlotDurationMinutes+1)
	for m := open; m <= close; m += SlotDurationMinutes {
		slots = append(slots, types.FromMinutes(m))
	}
	return slots
}

// ToTimeOfDay extracts the calendar-local "HH:MM" label from an absolute timestamp
func ToTimeOfDay(t time.Time) types.TimeString {
	return types.NewTimeString(t.Local())
}

// ToAbsoluteTime combines a YYYY-MM-DD date and an HH:MM time of day into an
// absolute timestamp, interpreted in the calendar-local offset
func ToAbsoluteTime(dateStr string, slot types.TimeString) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat+" "+TimeFormat, dateStr+" "+slot.String(), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("domain: invalid date/time %q %q: %w", dateStr, slot, err)
	}
	return t, nil
}

// AddMinutes returns a new absolute timestamp shifted by the given minutes
func AddMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// IsSlotInPast returns true if the assembled timestamp for date+slot is
// strictly before now. Граница "прошлого" подвижна, поэтому вызывающая
// сторона обязана передавать живое время, а не кэшированное.
func IsSlotInPast(dateStr string, slot types.TimeString, now time.Time) (bool, error) {
	slotStart, err := ToAbsoluteTime(dateStr, slot)
	if err != nil {
		return false, err
	}
	return slotStart.Before(now), nil
}

// SnapToGrid rounds an arbitrary HH:MM to the nearest 30-minute grid point
// (round-half-up) and clamps the result into the working grid, so the edge of
// the day always lands on a real slot: "20:15" snaps to "20:00".
func SnapToGrid(slot types.TimeString) (types.TimeString, error) {
	total, err := slot.MinutesFromMidnight()
	if err != nil {
		return "", err
	}

	snapped := (total + SlotDurationMinutes/2) / SlotDurationMinutes * SlotDurationMinutes

	open, _ := ScheduleOpenTime.MinutesFromMidnight()
	close, _ := ScheduleCloseTime.MinutesFromMidnight()
	if snapped < open {
		snapped = open
	}
	if snapped > close {
		snapped = close
	}

	return types.FromMinutes(snapped), nil
}

// IsOnGrid returns true if the slot is one of the SlotGrid labels
func IsOnGrid(slot types.TimeString) bool {
	total, err := slot.MinutesFromMidnight()
	if err != nil {
		return false
	}

	open, _ := ScheduleOpenTime.MinutesFromMidnight()
	close, _ := ScheduleCloseTime.MinutesFromMidnight()

	return total >= open && total <= close && total%SlotDurationMinutes == 0
}
