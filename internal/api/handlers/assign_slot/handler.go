package assign_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/THS-StorageService/internal/api/handlers"
	"github.com/m04kA/THS-StorageService/internal/api/middleware"
	assignSlot "github.com/m04kA/THS-StorageService/internal/usecase/assign_slot"
)

const (
	msgInvalidCustomerID  = "некорректный ID клиента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotOccupied       = "это место уже занято"
	msgSlotOutOfGrid      = "указанное место вне сетки склада"
	msgCustomerNotFound   = "клиент не найден"
	msgInvalidInput       = "некорректные данные назначения"
)

type Handler struct {
	useCase AssignSlotUseCase
	logger  Logger
}

func NewHandler(useCase AssignSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/customers/{customerId}/storage-slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /customers/{id}/storage-slot - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	var req AssignSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /customers/{id}/storage-slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(customerID))
	if err != nil {
		switch {
		case errors.Is(err, assignSlot.ErrSlotOccupied):
			h.logger.Warn("PUT /customers/{id}/storage-slot - Slot occupied: customer_id=%d, slot=H%d-%s-%d",
				customerID, req.Hotel, req.Section, req.Shelf)
			handlers.RespondConflict(w, msgSlotOccupied)

		case errors.Is(err, assignSlot.ErrSlotOutOfGrid):
			h.logger.Warn("PUT /customers/{id}/storage-slot - Slot out of grid: customer_id=%d, slot=H%d-%s-%d",
				customerID, req.Hotel, req.Section, req.Shelf)
			handlers.RespondBadRequest(w, msgSlotOutOfGrid)

		case errors.Is(err, assignSlot.ErrCustomerNotFound):
			h.logger.Warn("PUT /customers/{id}/storage-slot - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, assignSlot.ErrInvalidInput):
			h.logger.Warn("PUT /customers/{id}/storage-slot - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /customers/{id}/storage-slot - Failed to assign slot: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	staffID, _ := middleware.GetUserID(r.Context())
	h.logger.Info("PUT /customers/{id}/storage-slot - Slot assigned successfully: customer_id=%d, location=%s, staff_id=%d",
		customerID, result.LocationCode, staffID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
