package models

import (
	"time"

	"github.com/m04kA/THS-StorageService/internal/domain"
)

// OccupantResponse клиент, занимающий место
type OccupantResponse struct {
	CustomerID   int64  `json:"customerId"`
	Name         string `json:"name"`
	LicensePlate string `json:"licensePlate"`
	Status       string `json:"status"`
	AssignedAt   string `json:"assignedAt"` // ISO 8601
}

// SlotResponse одно место сетки склада
type SlotResponse struct {
	Hotel        int               `json:"hotel"`
	Section      string            `json:"section"`
	Shelf        int               `json:"shelf"`
	LocationCode string            `json:"locationCode"`
	Occupant     *OccupantResponse `json:"occupant,omitempty"`
}

// MapResponse снимок всей сетки склада
type MapResponse struct {
	Hotels        []int          `json:"hotels"`
	Sections      []string       `json:"sections"`
	Shelves       []int          `json:"shelves"`
	Slots         []SlotResponse `json:"slots"`
	OccupiedCount int            `json:"occupiedCount"`
	TotalSlots    int            `json:"totalSlots"`
}

// FromOccupancyIndex строит снимок сетки из индекса занятости
// Места перечисляются в стабильном порядке: отель, секция, полка
func FromOccupancyIndex(idx *domain.OccupancyIndex) *MapResponse {
	resp := &MapResponse{
		Hotels:        hotels(),
		Sections:      append([]string(nil), domain.Sections...),
		Shelves:       shelves(),
		Slots:         make([]SlotResponse, 0, domain.GridSize),
		OccupiedCount: idx.OccupiedCount(),
		TotalSlots:    domain.GridSize,
	}

	for _, slot := range domain.AllSlots() {
		slotResp := SlotResponse{
			Hotel:        slot.Hotel,
			Section:      slot.Section,
			Shelf:        slot.Shelf,
			LocationCode: slot.LocationCode(),
		}

		if occupant, ok := idx.OccupantOf(slot); ok {
			slotResp.Occupant = &OccupantResponse{
				CustomerID:   occupant.CustomerID,
				Name:         occupant.CustomerName,
				LicensePlate: occupant.CustomerLicensePlate,
				Status:       string(occupant.CustomerStatus),
				AssignedAt:   occupant.AssignedAt.Format(time.RFC3339),
			}
		}

		resp.Slots = append(resp.Slots, slotResp)
	}

	return resp
}

func hotels() []int {
	result := make([]int, 0, domain.MaxHotel-domain.MinHotel+1)
	for h := domain.MinHotel; h <= domain.MaxHotel; h++ {
		result = append(result, h)
	}
	return result
}

func shelves() []int {
	result := make([]int, 0, domain.MaxShelf-domain.MinShelf+1)
	for s := domain.MinShelf; s <= domain.MaxShelf; s++ {
		result = append(result, s)
	}
	return result
}
