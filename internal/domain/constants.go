package domain

import "github.com/m04kA/SMC-ScheduleService/pkg/types"

// Slot grid constants
const (
	// SlotDurationMinutes шаг сетки расписания
	SlotDurationMinutes = 30

	// ScheduleOpenTime первый слот рабочего дня
	ScheduleOpenTime types.TimeString = "08:00"

	// ScheduleCloseTime последний слот рабочего дня (включительно)
	ScheduleCloseTime types.TimeString = "20:00"
)

// Business validation constants
const (
	MaxFirstNameLength       = 100
	MaxLastNameLength        = 100
	MaxServiceNameLength     = 200
	MaxCustomFieldNameLength = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
