package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// DropReason причина отказа при перетаскивании брони на новый слот
type DropReason string

const (
	// DropReasonSameSlot бронь отпущена на своем же слоте - не ошибка, а no-op.
	// Вызывающая сторона не должна показывать пользователю ошибку.
	DropReasonSameSlot DropReason = "same_slot"

	// DropReasonPast целевой слот уже в прошлом
	DropReasonPast DropReason = "past"

	// DropReasonOverlap целевой интервал пересекается с другой бронью специалиста
	DropReasonOverlap DropReason = "overlap"
)

// DropResult результат проверки перетаскивания
type DropResult struct {
	Valid  bool
	Reason DropReason
}

// EvaluateDrop classifies a candidate drop (specialist, slot) for an in-flight
// reservation. The same pure decision procedure backs interactive drop
// feedback and the server-side move pre-check, so the two call sites can
// never disagree on the simple cases. The authoritative overlap re-check
// still happens inside the move transaction.
//
// Порядок правил важен - побеждает первое сработавшее:
//  1. тот же специалист, тот же день и тот же слот → same_slot (no-op)
//  2. слот в прошлом → past
//  3. пересечение с другой бронью специалиста → overlap
//  4. иначе бросок допустим
func EvaluateDrop(
	date string,
	targetSpecialistID int64,
	targetSlot types.TimeString,
	reservation *Reservation,
	dayReservations []*Reservation,
	now time.Time,
) (DropResult, error) {
	// Та же метка слота на другой дате - это перенос, а не no-op
	if targetSpecialistID == reservation.SpecialistID &&
		date == reservation.StartDate() &&
		targetSlot == reservation.StartSlot() {
		return DropResult{Valid: false, Reason: DropReasonSameSlot}, nil
	}

	inPast, err := IsSlotInPast(date, targetSlot, now)
	if err != nil {
		return DropResult{}, err
	}
	if inPast {
		return DropResult{Valid: false, Reason: DropReasonPast}, nil
	}

	candStart, err := ToAbsoluteTime(date, targetSlot)
	if err != nil {
		return DropResult{}, err
	}
	candEnd := AddMinutes(candStart, reservation.DurationMinutes)

	if HasOverlap(dayReservations, targetSpecialistID, candStart, candEnd, &reservation.ID) {
		return DropResult{Valid: false, Reason: DropReasonOverlap}, nil
	}

	return DropResult{Valid: true}, nil
}
