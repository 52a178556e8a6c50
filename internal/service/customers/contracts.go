package customers

import (
	"context"

	"github.com/m04kA/THS-StorageService/internal/domain"
)

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, id int64, patch domain.CustomerPatch) error
	SearchByText(ctx context.Context, text string, limit uint64, unassignedOnly bool) ([]*domain.Customer, error)
	FindMatching(ctx context.Context, name, licensePlate, phone, email string) ([]*domain.Customer, error)
}

// AssignmentRepository интерфейс репозитория назначений мест
// Нужен для маршрутизации поиска по коду места
type AssignmentRepository interface {
	GetBySlot(ctx context.Context, slot domain.Slot) (*domain.StorageAssignment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
