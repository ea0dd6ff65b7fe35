package domain

import "time"

// HasOverlap decides whether the candidate interval [candStart, candEnd) for
// the given specialist intersects any of the existing reservations.
//
// Интервалы полуоткрытые: касание границ пересечением НЕ считается.
// Примеры:
//   - Кандидат 09:30-10:00, бронь 09:00-09:30 → НЕТ пересечения (граничат)
//   - Кандидат 09:30-10:00, бронь 09:00-10:00 → ЕСТЬ пересечение
//
// excludeID исключает собственную запись при проверке update/move;
// nil означает, что исключать нечего (создание новой брони).
func HasOverlap(reservations []*Reservation, specialistID int64, candStart, candEnd time.Time, excludeID *int64) bool {
	for _, r := range reservations {
		if r.SpecialistID != specialistID {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}

		// Стандартный тест пересечения полуоткрытых интервалов:
		// candStart < rEnd && candEnd > rStart
		if candStart.Before(r.EndTime) && candEnd.After(r.StartTime) {
			return true
		}
	}
	return false
}
