package update_customer

import (
	"context"

	"github.com/m04kA/THS-StorageService/internal/service/customers/models"
)

// CustomerService интерфейс сервиса клиентов
type CustomerService interface {
	Update(ctx context.Context, id int64, req *models.UpdateCustomerRequest) error
	GetByID(ctx context.Context, id int64) (*models.CustomerResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
