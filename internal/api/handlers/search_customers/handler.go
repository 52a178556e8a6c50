package search_customers

import (
	"errors"
	"net/http"

	"github.com/m04kA/THS-StorageService/internal/api/handlers"
	"github.com/m04kA/THS-StorageService/internal/service/customers"
	"github.com/m04kA/THS-StorageService/internal/service/customers/models"
)

const (
	msgEmptyQuery = "пустой поисковый запрос"
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

// Handle GET /api/v1/customers/search?q=<запрос>&unassigned=true
// Запрос, содержащий код места (H1-A-3), ищет занимающего место клиента,
// любой другой текст ищется по подстроке имени/госномера
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	unassignedOnly := r.URL.Query().Get("unassigned") == "true"

	req := &models.SearchRequest{
		Query:          query,
		UnassignedOnly: unassignedOnly,
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrInvalidInput):
			h.logger.Warn("GET /customers/search - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgEmptyQuery)

		default:
			h.logger.Error("GET /customers/search - Search failed: query=%q, error=%v", query, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/search - Found %d customers: query=%q", len(result.Customers), query)
	handlers.RespondJSON(w, http.StatusOK, result)
}
