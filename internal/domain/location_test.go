package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocationCode(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Slot
		ok       bool
	}{
		{
			name:     "canonical code",
			text:     "H1-A-3",
			expected: Slot{Hotel: 1, Section: "A", Shelf: 3},
			ok:       true,
		},
		{
			name:     "lowercase input",
			text:     "h2-b-5",
			expected: Slot{Hotel: 2, Section: "B", Shelf: 5},
			ok:       true,
		},
		{
			name:     "code embedded in free text",
			text:     "клиент стоит на H4-C-6, забрать в субботу",
			expected: Slot{Hotel: 4, Section: "C", Shelf: 6},
			ok:       true,
		},
		{
			name:     "first match wins",
			text:     "H1-A-1 H2-B-2",
			expected: Slot{Hotel: 1, Section: "A", Shelf: 1},
			ok:       true,
		},
		{
			name:     "code outside the grid still parses",
			text:     "H9-Z-99",
			expected: Slot{Hotel: 9, Section: "Z", Shelf: 99},
			ok:       true,
		},
		{
			name: "plain name is not a code",
			text: "Иванов",
			ok:   false,
		},
		{
			name: "license plate is not a code",
			text: "А123ВС77",
			ok:   false,
		},
		{
			name: "empty string",
			text: "",
			ok:   false,
		},
		{
			name: "hyphens without letters",
			text: "1-2-3",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := ParseLocationCode(tt.text)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, slot)
			}
		})
	}
}

func TestLocationCodeRoundTrip(t *testing.T) {
	slots := AllSlots()
	require.Len(t, slots, GridSize)

	for _, slot := range slots {
		code := slot.LocationCode()

		parsed, ok := ParseLocationCode(code)
		require.True(t, ok, "code %s must parse back", code)
		assert.Equal(t, slot, parsed)
	}
}

func TestSlotInGrid(t *testing.T) {
	tests := []struct {
		name string
		slot Slot
		want bool
	}{
		{"first slot", Slot{Hotel: 1, Section: "A", Shelf: 1}, true},
		{"last slot", Slot{Hotel: 4, Section: "C", Shelf: 6}, true},
		{"hotel too small", Slot{Hotel: 0, Section: "A", Shelf: 1}, false},
		{"hotel too large", Slot{Hotel: 5, Section: "A", Shelf: 1}, false},
		{"unknown section", Slot{Hotel: 1, Section: "D", Shelf: 1}, false},
		{"lowercase section", Slot{Hotel: 1, Section: "a", Shelf: 1}, false},
		{"shelf too small", Slot{Hotel: 1, Section: "A", Shelf: 0}, false},
		{"shelf too large", Slot{Hotel: 1, Section: "A", Shelf: 7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.InGrid())
		})
	}
}

func TestAllSlotsStableOrder(t *testing.T) {
	slots := AllSlots()
	require.Len(t, slots, GridSize)

	// Порядок обхода: отель, секция, полка
	assert.Equal(t, Slot{Hotel: 1, Section: "A", Shelf: 1}, slots[0])
	assert.Equal(t, Slot{Hotel: 1, Section: "A", Shelf: 2}, slots[1])
	assert.Equal(t, Slot{Hotel: 1, Section: "B", Shelf: 1}, slots[MaxShelf])
	assert.Equal(t, Slot{Hotel: 4, Section: "C", Shelf: 6}, slots[GridSize-1])

	seen := make(map[Slot]struct{}, len(slots))
	for _, s := range slots {
		_, dup := seen[s]
		require.False(t, dup, "slot %s appears twice", s.LocationCode())
		seen[s] = struct{}{}

		assert.True(t, s.InGrid())
	}
}
