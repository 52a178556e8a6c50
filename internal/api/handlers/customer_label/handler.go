package customer_label

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/m04kA/THS-StorageService/internal/api/handlers"
	"github.com/m04kA/THS-StorageService/internal/service/customers"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgCustomerNotFound  = "клиент не найден"
	msgInvalidFormat     = "некорректный формат этикетки, ожидается png или json"
)

const (
	formatPNG  = "png"
	formatJSON = "json"

	defaultPNGSize = 256
	minPNGSize     = 64
	maxPNGSize     = 1024
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

// Handle GET /api/v1/customers/{customerId}/label?format=png|json&size=256
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id}/label - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatPNG
	}
	if format != formatPNG && format != formatJSON {
		h.logger.Warn("GET /customers/{id}/label - Invalid format: %s", format)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	customer, err := h.service.GetByID(r.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrCustomerNotFound):
			h.logger.Warn("GET /customers/{id}/label - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		default:
			h.logger.Error("GET /customers/{id}/label - Failed to get customer: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	payload := LabelPayload{
		ID:             customer.ID,
		Name:           customer.Name,
		LicensePlate:   customer.LicensePlate,
		SummerTireSize: customer.SummerTireSize,
		WinterTireSize: customer.WinterTireSize,
	}
	if customer.StorageSlot != nil {
		payload.LocationCode = &customer.StorageSlot.LocationCode
	}

	if format == formatJSON {
		h.logger.Info("GET /customers/{id}/label - Label payload built: customer_id=%d", customerID)
		handlers.RespondJSON(w, http.StatusOK, &LabelResponse{Payload: payload})
		return
	}

	size := parseSize(r.URL.Query().Get("size"))

	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("GET /customers/{id}/label - Failed to marshal payload: customer_id=%d, error=%v",
			customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		h.logger.Error("GET /customers/{id}/label - Failed to encode QR: customer_id=%d, error=%v",
			customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /customers/{id}/label - QR label rendered: customer_id=%d, size=%d", customerID, size)
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// parseSize валидирует размер PNG, вне диапазона возвращает дефолт
func parseSize(raw string) int {
	if raw == "" {
		return defaultPNGSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < minPNGSize || size > maxPNGSize {
		return defaultPNGSize
	}
	return size
}
