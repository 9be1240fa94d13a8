package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/satriajanaka/workforce-management/internal/transport"
	"github.com/satriajanaka/workforce-management/pkg/logger"
)

type ServiceAPI interface {
	GetStats(ctx context.Context, referenceDate time.Time) (*Stats, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

// GetStats serves the dashboard snapshot. The optional date query parameter
// overrides the reference date.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	referenceDate, err := h.ParseDateQuery(r, "date")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	stats, err := h.Service.GetStats(r.Context(), referenceDate)
	if err != nil {
		h.Logger.Error("GetStats: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
