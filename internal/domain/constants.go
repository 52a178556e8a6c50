package domain

// Warehouse grid bounds
const (
	MinHotel = 1
	MaxHotel = 4
	MinShelf = 1
	MaxShelf = 6
)

// Sections список секций внутри каждого отеля
var Sections = []string{"A", "B", "C"}

// GridSize общее количество мест на складе
const GridSize = (MaxHotel - MinHotel + 1) * 3 * (MaxShelf - MinShelf + 1)

// SearchResultLimit максимальное количество результатов поиска клиентов
const SearchResultLimit = 10

// Validation constants
const (
	MaxNameLength         = 200
	MaxLicensePlateLength = 20
	MaxTireSizeLength     = 50
	MaxPhoneLength        = 30
	MaxEmailLength        = 200
)
