package domain

import "time"

// StorageAssignment binds exactly one customer to exactly one storage slot.
// Invariants, enforced by the allocation usecases and by unique constraints
// in the database:
//   - at most one assignment per slot
//   - at most one assignment per customer
//
// Moving a customer updates the slot of the existing row, it never creates
// a second one.
type StorageAssignment struct {
	ID         int64
	CustomerID int64
	Slot       Slot
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OccupiedSlot строка read model занятости: место плюс данные занимающего
// его клиента. Из списка таких строк строится OccupancyIndex.
type OccupiedSlot struct {
	Slot                 Slot
	AssignmentID         int64
	CustomerID           int64
	CustomerName         string
	CustomerLicensePlate string
	CustomerStatus       CustomerStatus
	AssignedAt           time.Time
}
