package vacate_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/THS-StorageService/internal/api/handlers"
	"github.com/m04kA/THS-StorageService/internal/api/middleware"
	vacateSlot "github.com/m04kA/THS-StorageService/internal/usecase/vacate_slot"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgCustomerNotFound  = "клиент не найден"
)

type Handler struct {
	useCase VacateSlotUseCase
	logger  Logger
}

func NewHandler(useCase VacateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/customers/{customerId}/storage-slot
// Идемпотентна: повторный вызов для неразмещенного клиента тоже 204
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /customers/{id}/storage-slot - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &vacateSlot.Request{CustomerID: customerID})
	if err != nil {
		switch {
		case errors.Is(err, vacateSlot.ErrCustomerNotFound):
			h.logger.Warn("DELETE /customers/{id}/storage-slot - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, vacateSlot.ErrInvalidInput):
			h.logger.Warn("DELETE /customers/{id}/storage-slot - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCustomerID)

		default:
			h.logger.Error("DELETE /customers/{id}/storage-slot - Failed to vacate: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	staffID, _ := middleware.GetUserID(r.Context())
	if result.Vacated {
		h.logger.Info("DELETE /customers/{id}/storage-slot - Slot vacated: customer_id=%d, staff_id=%d",
			customerID, staffID)
	} else {
		h.logger.Info("DELETE /customers/{id}/storage-slot - Customer was not stored: customer_id=%d, staff_id=%d",
			customerID, staffID)
	}
	handlers.RespondNoContent(w)
}
