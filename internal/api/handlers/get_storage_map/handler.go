package get_storage_map

import (
	"net/http"

	"github.com/m04kA/THS-StorageService/internal/api/handlers"
)

type Handler struct {
	service StorageMapService
	logger  Logger
}

func NewHandler(service StorageMapService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/storage/map
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("GET /storage/map - Failed to build snapshot: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /storage/map - Snapshot built: occupied=%d/%d",
		snapshot.OccupiedCount, snapshot.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, snapshot)
}
