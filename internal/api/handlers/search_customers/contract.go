package search_customers

import (
	"context"

	"github.com/m04kA/THS-StorageService/internal/service/customers/models"
)

// CustomerService интерфейс сервиса клиентов
type CustomerService interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.CustomerListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
