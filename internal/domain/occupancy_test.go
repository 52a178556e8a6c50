package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOccupancyIndex(t *testing.T) {
	slotA := Slot{Hotel: 1, Section: "A", Shelf: 1}
	slotB := Slot{Hotel: 2, Section: "B", Shelf: 3}
	now := time.Now()

	occupied := []OccupiedSlot{
		{Slot: slotA, AssignmentID: 1, CustomerID: 10, CustomerName: "Иванов", AssignedAt: now},
		{Slot: slotB, AssignmentID: 2, CustomerID: 20, CustomerName: "Петров", AssignedAt: now},
	}

	idx := NewOccupancyIndex(occupied)

	assert.Equal(t, 2, idx.OccupiedCount())
	assert.Empty(t, idx.Conflicts())

	occupant, ok := idx.OccupantOf(slotA)
	require.True(t, ok)
	assert.Equal(t, int64(10), occupant.CustomerID)

	assert.True(t, idx.IsOccupied(slotB))
	assert.False(t, idx.IsOccupied(Slot{Hotel: 4, Section: "C", Shelf: 6}))
	assert.ElementsMatch(t, []Slot{slotA, slotB}, idx.AllOccupied())
}

func TestNewOccupancyIndexEmpty(t *testing.T) {
	idx := NewOccupancyIndex(nil)

	assert.Equal(t, 0, idx.OccupiedCount())
	assert.Empty(t, idx.AllOccupied())
	assert.Empty(t, idx.Conflicts())
}

func TestNewOccupancyIndexDuplicateSlot(t *testing.T) {
	slot := Slot{Hotel: 3, Section: "C", Shelf: 2}
	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	// Две записи на одно место - нарушение целостности данных,
	// детерминированно побеждает более поздняя
	idx := NewOccupancyIndex([]OccupiedSlot{
		{Slot: slot, AssignmentID: 1, CustomerID: 10, AssignedAt: older},
		{Slot: slot, AssignmentID: 2, CustomerID: 20, AssignedAt: newer},
	})

	assert.Equal(t, 1, idx.OccupiedCount())

	occupant, ok := idx.OccupantOf(slot)
	require.True(t, ok)
	assert.Equal(t, int64(20), occupant.CustomerID)

	require.Len(t, idx.Conflicts(), 1)
	assert.Equal(t, slot, idx.Conflicts()[0])
}

func TestNewOccupancyIndexDuplicateOrderIndependent(t *testing.T) {
	slot := Slot{Hotel: 1, Section: "B", Shelf: 4}
	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	// Победитель не зависит от порядка строк в выборке
	idx := NewOccupancyIndex([]OccupiedSlot{
		{Slot: slot, AssignmentID: 2, CustomerID: 20, AssignedAt: newer},
		{Slot: slot, AssignmentID: 1, CustomerID: 10, AssignedAt: older},
	})

	occupant, ok := idx.OccupantOf(slot)
	require.True(t, ok)
	assert.Equal(t, int64(20), occupant.CustomerID)
	assert.Len(t, idx.Conflicts(), 1)
}
