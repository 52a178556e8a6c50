package domain

// OccupancyIndex is the derived read model mapping slots to their current
// occupant. It is rebuilt from the full assignment list on every query;
// callers never mutate it.
type OccupancyIndex struct {
	bySlot map[Slot]OccupiedSlot
	// slots with more than one assignment row, which the single-occupancy
	// constraint should make impossible; surfaced so callers can log a
	// data-integrity warning instead of silently picking one
	conflicts []Slot
}

// NewOccupancyIndex builds an index from the current assignment list.
// If the backing data contains duplicate rows for one slot, the
// most-recently-assigned row wins deterministically and the slot is
// recorded as a conflict.
func NewOccupancyIndex(occupied []OccupiedSlot) *OccupancyIndex {
	idx := &OccupancyIndex{
		bySlot: make(map[Slot]OccupiedSlot, len(occupied)),
	}

	for _, o := range occupied {
		existing, ok := idx.bySlot[o.Slot]
		if !ok {
			idx.bySlot[o.Slot] = o
			continue
		}

		idx.conflicts = append(idx.conflicts, o.Slot)
		if o.AssignedAt.After(existing.AssignedAt) {
			idx.bySlot[o.Slot] = o
		}
	}

	return idx
}

// OccupantOf returns the occupant of the slot, if any
func (idx *OccupancyIndex) OccupantOf(slot Slot) (OccupiedSlot, bool) {
	o, ok := idx.bySlot[slot]
	return o, ok
}

// IsOccupied returns true if the slot has an occupant
func (idx *OccupancyIndex) IsOccupied(slot Slot) bool {
	_, ok := idx.bySlot[slot]
	return ok
}

// AllOccupied returns every occupied slot address
func (idx *OccupancyIndex) AllOccupied() []Slot {
	slots := make([]Slot, 0, len(idx.bySlot))
	for slot := range idx.bySlot {
		slots = append(slots, slot)
	}
	return slots
}

// OccupiedCount returns the number of occupied slots
func (idx *OccupancyIndex) OccupiedCount() int {
	return len(idx.bySlot)
}

// Conflicts returns slots that had more than one assignment row in the
// backing data. Empty on healthy data.
func (idx *OccupancyIndex) Conflicts() []Slot {
	return idx.conflicts
}
