package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// locationCodePattern первая подстрока вида H<цифры>-<буква>-<цифры>,
// регистр H и буквы секции не учитывается
var locationCodePattern = regexp.MustCompile(`(?i)H(\d+)-([A-Z])-(\d+)`)

// LocationCode returns the canonical printable code of the slot,
// e.g. "H1-A-3". The code round-trips through ParseLocationCode.
func (s Slot) LocationCode() string {
	return fmt.Sprintf("H%d-%s-%d", s.Hotel, s.Section, s.Shelf)
}

// ParseLocationCode extracts a slot address from free-form text (search
// queries, scanned QR payloads). It matches the first H<digits>-<letter>-<digits>
// substring, case-insensitively, and upper-cases the section.
//
// The second return value is false when the text contains no location code.
// Callers treat that as "not a location query" and fall back to text search,
// never as an error.
func ParseLocationCode(text string) (Slot, bool) {
	m := locationCodePattern.FindStringSubmatch(text)
	if m == nil {
		return Slot{}, false
	}

	hotel, err := strconv.Atoi(m[1])
	if err != nil {
		return Slot{}, false
	}
	shelf, err := strconv.Atoi(m[3])
	if err != nil {
		return Slot{}, false
	}

	return Slot{
		Hotel:   hotel,
		Section: strings.ToUpper(m[2]),
		Shelf:   shelf,
	}, true
}
