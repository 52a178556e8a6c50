package update_customer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/THS-StorageService/internal/api/handlers"
	"github.com/m04kA/THS-StorageService/internal/service/customers"
	"github.com/m04kA/THS-StorageService/internal/service/customers/models"
)

const (
	msgInvalidCustomerID  = "некорректный ID клиента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные клиента"
	msgNotFound           = "клиент не найден"
	msgDuplicateCustomer  = "обновление конфликтует с существующим клиентом"
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

// Handle PATCH /api/v1/customers/{customerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /customers/{id} - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	var req models.UpdateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /customers/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Update(r.Context(), customerID, &req); err != nil {
		switch {
		case errors.Is(err, customers.ErrCustomerNotFound):
			h.logger.Warn("PATCH /customers/{id} - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, customers.ErrDuplicateCustomer):
			h.logger.Warn("PATCH /customers/{id} - Update collides with existing customer: customer_id=%d", customerID)
			handlers.RespondConflict(w, msgDuplicateCustomer)

		case errors.Is(err, customers.ErrInvalidInput):
			h.logger.Warn("PATCH /customers/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /customers/{id} - Failed to update customer: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Возвращаем обновленный профиль, чтобы UI рендерил свежее состояние
	customer, err := h.service.GetByID(r.Context(), customerID)
	if err != nil {
		h.logger.Error("PATCH /customers/{id} - Failed to reload customer: customer_id=%d, error=%v", customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /customers/{id} - Customer updated successfully: customer_id=%d", customerID)
	handlers.RespondJSON(w, http.StatusOK, customer)
}
