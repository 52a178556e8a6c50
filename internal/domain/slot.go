package domain

// Slot represents one addressable storage coordinate in the warehouse grid:
// hotel (rack group), section (column) and shelf (row). Slots are the fixed
// coordinate space of the facility and are never created or destroyed,
// only their occupancy changes.
type Slot struct {
	Hotel   int
	Section string
	Shelf   int
}

// InGrid returns true if the slot lies inside the facility grid
func (s Slot) InGrid() bool {
	if s.Hotel < MinHotel || s.Hotel > MaxHotel {
		return false
	}
	if s.Shelf < MinShelf || s.Shelf > MaxShelf {
		return false
	}
	for _, section := range Sections {
		if s.Section == section {
			return true
		}
	}
	return false
}

// AllSlots returns every slot of the facility grid in stable order
// (hotel, then section, then shelf)
func AllSlots() []Slot {
	slots := make([]Slot, 0, GridSize)
	for hotel := MinHotel; hotel <= MaxHotel; hotel++ {
		for _, section := range Sections {
			for shelf := MinShelf; shelf <= MaxShelf; shelf++ {
				slots = append(slots, Slot{Hotel: hotel, Section: section, Shelf: shelf})
			}
		}
	}
	return slots
}
