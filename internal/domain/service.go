package domain

import (
	"strconv"
	"time"
)

// Service represents a catalog entry that reservations reference
type Service struct {
	ID    int64
	Name  string
	Price float64
	Color string

	// CustomFields значения пользовательских полей, ключ - ID поля
	CustomFields map[int64]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomField represents a user-defined column of the services table
type CustomField struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// ColumnOrder represents the display position of one services-table column.
// ColumnKey is either a built-in key ("name", "price", ...) or "custom_<id>".
type ColumnOrder struct {
	ColumnKey string
	Position  int
}

// CustomFieldColumnKey возвращает ключ колонки для пользовательского поля
func CustomFieldColumnKey(fieldID int64) string {
	return "custom_" + strconv.FormatInt(fieldID, 10)
}
