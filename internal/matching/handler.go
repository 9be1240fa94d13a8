package matching

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/satriajanaka/workforce-management/internal/transport"
	"github.com/satriajanaka/workforce-management/pkg/logger"
)

type ServiceAPI interface {
	MatchEmployeesForProject(ctx context.Context, projectID int64, minMatchPercent float64) ([]*EmployeeMatch, error)
	MatchProjectsForEmployee(ctx context.Context, employeeID int64, minMatchPercent float64) ([]*ProjectMatch, error)
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

// MatchEmployees lists ranked employee candidates for a project. The
// min_match query parameter overrides the 50 percent default cutoff.
func (h *Handler) MatchEmployees(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	matches, err := h.Service.MatchEmployeesForProject(r.Context(), projectID, h.minMatchPercent(r))
	if err != nil {
		h.Logger.Error("MatchEmployees: service error", "error", err, "project_id", projectID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
	})
}

// MatchProjects lists ranked active projects for an employee.
func (h *Handler) MatchProjects(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	matches, err := h.Service.MatchProjectsForEmployee(r.Context(), employeeID, h.minMatchPercent(r))
	if err != nil {
		h.Logger.Error("MatchProjects: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
	})
}

func (h *Handler) minMatchPercent(r *http.Request) float64 {
	if raw := r.URL.Query().Get("min_match"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed >= 0 && parsed <= 100 {
			return parsed
		}
	}
	return DefaultMinMatchPercent
}
