package assign_slot

import (
	"time"

	"github.com/m04kA/THS-StorageService/internal/domain"
	assignSlot "github.com/m04kA/THS-StorageService/internal/usecase/assign_slot"
)

// AssignSlotRequest HTTP request model
type AssignSlotRequest struct {
	Hotel   int    `json:"hotel"`
	Section string `json:"section"`
	Shelf   int    `json:"shelf"`
}

// AssignmentResponse HTTP response model
type AssignmentResponse struct {
	AssignmentID         int64   `json:"assignmentId"`
	CustomerID           int64   `json:"customerId"`
	Hotel                int     `json:"hotel"`
	Section              string  `json:"section"`
	Shelf                int     `json:"shelf"`
	LocationCode         string  `json:"locationCode"`
	PreviousLocationCode *string `json:"previousLocationCode,omitempty"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AssignSlotRequest) ToUseCaseRequest(customerID int64) *assignSlot.Request {
	return &assignSlot.Request{
		CustomerID: customerID,
		Slot: domain.Slot{
			Hotel:   r.Hotel,
			Section: r.Section,
			Shelf:   r.Shelf,
		},
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *assignSlot.Response) *AssignmentResponse {
	return &AssignmentResponse{
		AssignmentID:         resp.AssignmentID,
		CustomerID:           resp.CustomerID,
		Hotel:                resp.Slot.Hotel,
		Section:              resp.Slot.Section,
		Shelf:                resp.Slot.Shelf,
		LocationCode:         resp.LocationCode,
		PreviousLocationCode: resp.PreviousLocationCode,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}
}
