package location_label

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/m04kA/THS-StorageService/internal/api/handlers"
	"github.com/m04kA/THS-StorageService/internal/domain"
)

const (
	msgInvalidLocationCode = "некорректный код места, ожидается формат H1-A-3"
	msgInvalidFormat       = "некорректный формат этикетки, ожидается png или json"
)

const (
	formatPNG  = "png"
	formatJSON = "json"

	defaultPNGSize = 256
	minPNGSize     = 64
	maxPNGSize     = 1024
)

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

// Handle GET /api/v1/storage/slots/{locationCode}/label?format=png|json&size=256
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slot, ok := domain.ParseLocationCode(vars["locationCode"])
	if !ok || !slot.InGrid() {
		h.logger.Warn("GET /storage/slots/{code}/label - Invalid location code: %s", vars["locationCode"])
		handlers.RespondBadRequest(w, msgInvalidLocationCode)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatPNG
	}
	if format != formatPNG && format != formatJSON {
		h.logger.Warn("GET /storage/slots/{code}/label - Invalid format: %s", format)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	payload := LabelPayload{
		Hotel:   slot.Hotel,
		Section: slot.Section,
		Shelf:   slot.Shelf,
	}

	if format == formatJSON {
		h.logger.Info("GET /storage/slots/{code}/label - Label payload built: location=%s", slot.LocationCode())
		handlers.RespondJSON(w, http.StatusOK, &LabelResponse{
			LocationCode: slot.LocationCode(),
			Payload:      payload,
		})
		return
	}

	size := parseSize(r.URL.Query().Get("size"))

	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("GET /storage/slots/{code}/label - Failed to marshal payload: location=%s, error=%v",
			slot.LocationCode(), err)
		handlers.RespondInternalError(w)
		return
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		h.logger.Error("GET /storage/slots/{code}/label - Failed to encode QR: location=%s, error=%v",
			slot.LocationCode(), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /storage/slots/{code}/label - QR label rendered: location=%s, size=%d",
		slot.LocationCode(), size)
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
