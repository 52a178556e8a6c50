package create_customer

import (
	"errors"
	"net/http"

	"github.com/m04kA/THS-StorageService/internal/api/handlers"
	"github.com/m04kA/THS-StorageService/internal/service/customers"
	"github.com/m04kA/THS-StorageService/internal/service/customers/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные клиента"
	msgDuplicateCustomer  = "клиент с таким именем, госномером, телефоном или email уже существует"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/customers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	customer, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrDuplicateCustomer):
			h.logger.Warn("POST /customers - Duplicate customer: name=%s, plate=%s", req.Name, req.LicensePlate)
			handlers.RespondConflict(w, msgDuplicateCustomer)

		case errors.Is(err, customers.ErrInvalidInput):
			h.logger.Warn("POST /customers - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /customers - Failed to create customer: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /customers - Customer created successfully: customer_id=%d", customer.ID)
	handlers.RespondJSON(w, http.StatusCreated, customer)
}
