package assignment

import "errors"

var (
	// ErrAssignmentNotFound возвращается, когда назначение не найдено
	ErrAssignmentNotFound = errors.New("assignment.repository: assignment not found")

	// ErrSlotTaken возвращается при нарушении unique constraint на
	// (hotel, section, shelf) - место уже занято конкурентной записью
	ErrSlotTaken = errors.New("assignment.repository: slot already taken")

	// ErrCustomerAlreadyAssigned возвращается при нарушении unique constraint
	// на customer_id - у клиента уже есть место
	ErrCustomerAlreadyAssigned = errors.New("assignment.repository: customer already has an assignment")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("assignment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("assignment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("assignment.repository: failed to scan row")
)
