package domain

import "time"

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	StatusActive   CustomerStatus = "active"
	StatusInterim  CustomerStatus = "interim"
	StatusInactive CustomerStatus = "inactive"
)

// ValidStatuses список допустимых статусов клиента
var ValidStatuses = []CustomerStatus{
	StatusActive,
	StatusInterim,
	StatusInactive,
}

// IsValid returns true if the status is one of the known values
func (s CustomerStatus) IsValid() bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Customer represents a tire-storage customer
//
// Assignment is the customer's current storage assignment; nil means the
// customer has no tires in storage. A customer holds at most one assignment
// at any time.
type Customer struct {
	ID             int64
	Name           string
	LicensePlate   string
	SummerTireSize *string
	WinterTireSize *string
	Phone          string
	Email          string
	Status         CustomerStatus

	Assignment *StorageAssignment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsStored returns true if the customer currently occupies a storage slot
func (c *Customer) IsStored() bool {
	return c.Assignment != nil
}

// CustomerPatch частичное обновление профиля клиента
// nil-поле означает "не менять". Назначение места через патч не меняется,
// для этого есть отдельные операции assign/vacate.
type CustomerPatch struct {
	Name           *string
	LicensePlate   *string
	SummerTireSize *string
	WinterTireSize *string
	Phone          *string
	Email          *string
	Status         *CustomerStatus
}

// IsEmpty returns true if the patch changes nothing
func (p *CustomerPatch) IsEmpty() bool {
	return p.Name == nil &&
		p.LicensePlate == nil &&
		p.SummerTireSize == nil &&
		p.WinterTireSize == nil &&
		p.Phone == nil &&
		p.Email == nil &&
		p.Status == nil
}
