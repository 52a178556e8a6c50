package vacate_slot

import (
	"context"

	"github.com/m04kA/THS-StorageService/internal/domain"
)

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// AssignmentRepository интерфейс репозитория назначений мест
type AssignmentRepository interface {
	GetByCustomerID(ctx context.Context, customerID int64) (*domain.StorageAssignment, error)
	DeleteByCustomerID(ctx context.Context, customerID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
