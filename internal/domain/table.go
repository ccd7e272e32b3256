package domain

import "time"

// Table represents a physical table in a restaurant
type Table struct {
	ID           int64
	RestaurantID int64
	TableNumber  int // уникален в пределах ресторана
	Capacity     int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fits returns true if the table can seat the given party
func (t *Table) Fits(partySize int) bool {
	return t.Capacity >= partySize
}

// Restaurant represents a restaurant the reservation engine serves.
// OwnerUserID используется для проверки прав на управляющие операции.
type Restaurant struct {
	ID          int64
	Name        string
	OwnerUserID int64
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
