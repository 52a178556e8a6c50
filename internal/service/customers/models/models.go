package models

import (
	"errors"
	"time"

	"github.com/m04kA/THS-StorageService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе клиента
	ErrInvalidStatus = errors.New("invalid customer status")
)

// Request модели

// CreateCustomerRequest запрос на создание клиента
type CreateCustomerRequest struct {
	Name           string  `json:"name"`
	LicensePlate   string  `json:"licensePlate"`
	SummerTireSize *string `json:"summerTireSize,omitempty"`
	WinterTireSize *string `json:"winterTireSize,omitempty"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Status         string  `json:"status"`
}

// UpdateCustomerRequest запрос на частичное обновление профиля клиента
// nil-поля не изменяются. Назначение места через этот запрос не меняется.
type UpdateCustomerRequest struct {
	Name           *string `json:"name,omitempty"`
	LicensePlate   *string `json:"licensePlate,omitempty"`
	SummerTireSize *string `json:"summerTireSize,omitempty"`
	WinterTireSize *string `json:"winterTireSize,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	Status         *string `json:"status,omitempty"`
}

// ToDomainPatch конвертирует request в domain патч
func (r *UpdateCustomerRequest) ToDomainPatch() (domain.CustomerPatch, error) {
	patch := domain.CustomerPatch{
		Name:           r.Name,
		LicensePlate:   r.LicensePlate,
		SummerTireSize: r.SummerTireSize,
		WinterTireSize: r.WinterTireSize,
		Phone:          r.Phone,
		Email:          r.Email,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}

	return patch, nil
}

// SearchRequest запрос на поиск клиентов
// Query либо код места (H1-A-3), либо подстрока имени/госномера
type SearchRequest struct {
	Query          string `json:"query"`
	UnassignedOnly bool   `json:"unassignedOnly,omitempty"`
}

// Response модели

// StorageSlotResponse текущее место клиента на складе
type StorageSlotResponse struct {
	Hotel        int    `json:"hotel"`
	Section      string `json:"section"`
	Shelf        int    `json:"shelf"`
	LocationCode string `json:"locationCode"`
	AssignedAt   string `json:"assignedAt"` // ISO 8601
}

// CustomerResponse ответ с данными клиента
type CustomerResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	LicensePlate   string  `json:"licensePlate"`
	SummerTireSize *string `json:"summerTireSize,omitempty"`
	WinterTireSize *string `json:"winterTireSize,omitempty"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Status         string  `json:"status"`

	StorageSlot *StorageSlotResponse `json:"storageSlot,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerListResponse ответ со списком клиентов
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// Методы конвертации

// FromDomainCustomer конвертирует domain модель в DTO
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}

	resp := &CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		LicensePlate:   c.LicensePlate,
		SummerTireSize: c.SummerTireSize,
		WinterTireSize: c.WinterTireSize,
		Phone:          c.Phone,
		Email:          c.Email,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}

	if c.Assignment != nil {
		resp.StorageSlot = &StorageSlotResponse{
			Hotel:        c.Assignment.Slot.Hotel,
			Section:      c.Assignment.Slot.Section,
			Shelf:        c.Assignment.Slot.Shelf,
			LocationCode: c.Assignment.Slot.LocationCode(),
			AssignedAt:   c.Assignment.CreatedAt.Format(time.RFC3339),
		}
	}

	return resp
}

// FromDomainCustomerList конвертирует список domain моделей в DTO
func FromDomainCustomerList(customers []*domain.Customer) *CustomerListResponse {
	if customers == nil {
		return &CustomerListResponse{
			Customers: []CustomerResponse{},
		}
	}

	resp := &CustomerListResponse{
		Customers: make([]CustomerResponse, len(customers)),
	}

	for i, c := range customers {
		if customerResp := FromDomainCustomer(c); customerResp != nil {
			resp.Customers[i] = *customerResp
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.CustomerStatus с валидацией
func ToDomainStatus(status string) (domain.CustomerStatus, error) {
	s := domain.CustomerStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
