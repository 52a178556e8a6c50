package customers

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrDuplicateCustomer возвращается, когда клиент с таким же именем,
	// госномером, телефоном или email уже существует
	ErrDuplicateCustomer = errors.New("customer with the same name, license plate, phone or email already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("customers service: internal error")
)
