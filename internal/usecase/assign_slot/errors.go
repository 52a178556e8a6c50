package assign_slot

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("assign_slot: customer not found")

	// ErrSlotOccupied возвращается, когда место занято другим клиентом
	ErrSlotOccupied = errors.New("assign_slot: slot is occupied by another customer")

	// ErrSlotOutOfGrid возвращается, когда место вне сетки склада
	ErrSlotOutOfGrid = errors.New("assign_slot: slot is outside the warehouse grid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assign_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_slot: internal error")
)
