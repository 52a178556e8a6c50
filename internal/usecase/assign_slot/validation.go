package assign_slot

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if !req.Slot.InGrid() {
		return fmt.Errorf("%w: %s", ErrSlotOutOfGrid, req.Slot.LocationCode())
	}

	return nil
}
