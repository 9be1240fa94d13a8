package utilization

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/satriajanaka/workforce-management/internal/transport"
	"github.com/satriajanaka/workforce-management/pkg/logger"
)

type EngineAPI interface {
	Recompute(ctx context.Context, employeeID int64, referenceDate time.Time) (string, error)
	BenchDays(ctx context.Context, employeeID int64, referenceDate time.Time) (int, error)
}

type Handler struct {
	*transport.BaseHandler
	Engine EngineAPI
}

func NewHandler(engine EngineAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Engine:      engine,
	}
}

// RecomputeStatus refreshes an employee's availability status on demand, for
// dashboards and manual corrections. The optional date query parameter
// overrides the reference date.
func (h *Handler) RecomputeStatus(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	referenceDate, err := h.ParseDateQuery(r, "date")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	status, err := h.Engine.Recompute(r.Context(), employeeID, referenceDate)
	if err != nil {
		h.Logger.Error("RecomputeStatus: engine error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employee_id":         employeeID,
		"availability_status": status,
	})
}

func (h *Handler) GetBenchDays(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	referenceDate, err := h.ParseDateQuery(r, "date")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	days, err := h.Engine.BenchDays(r.Context(), employeeID, referenceDate)
	if err != nil {
		h.Logger.Error("GetBenchDays: engine error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employee_id": employeeID,
		"bench_days":  days,
	})
}
