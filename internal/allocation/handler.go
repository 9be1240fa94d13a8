package allocation

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/satriajanaka/workforce-management/internal/transport"
	"github.com/satriajanaka/workforce-management/pkg/logger"
)

type ServiceAPI interface {
	CreateAllocation(ctx context.Context, dto CreateAllocationDTO) (*Allocation, error)
	UpdateAllocation(ctx context.Context, id int64, dto UpdateAllocationDTO) (*Allocation, error)
	DeleteAllocation(ctx context.Context, id int64) error
	GetAllocation(ctx context.Context, id int64) (*Allocation, error)
	ListAllocations(ctx context.Context) ([]*Allocation, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]*Allocation, error)
	ListByProject(ctx context.Context, projectID int64) ([]*Allocation, error)
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

func (h *Handler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	var dto CreateAllocationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateAllocation: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	alloc, err := h.Service.CreateAllocation(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateAllocation: service error", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, alloc)
}

func (h *Handler) UpdateAllocation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid allocation ID")
		return
	}

	var dto UpdateAllocationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateAllocation: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	alloc, err := h.Service.UpdateAllocation(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateAllocation: service error", "error", err, "allocation_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, alloc)
}

func (h *Handler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid allocation ID")
		return
	}

	if err := h.Service.DeleteAllocation(r.Context(), id); err != nil {
		h.Logger.Error("DeleteAllocation: service error", "error", err, "allocation_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid allocation ID")
		return
	}

	alloc, err := h.Service.GetAllocation(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, alloc)
}

func (h *Handler) ListAllocations(w http.ResponseWriter, r *http.Request) {
	var (
		allocations []*Allocation
		err         error
	)

	switch {
	case r.URL.Query().Get("employee_id") != "":
		var employeeID int64
		employeeID, err = strconv.ParseInt(r.URL.Query().Get("employee_id"), 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid employee_id filter")
			return
		}
		allocations, err = h.Service.ListByEmployee(r.Context(), employeeID)
	case r.URL.Query().Get("project_id") != "":
		var projectID int64
		projectID, err = strconv.ParseInt(r.URL.Query().Get("project_id"), 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid project_id filter")
			return
		}
		allocations, err = h.Service.ListByProject(r.Context(), projectID)
	default:
		allocations, err = h.Service.ListAllocations(r.Context())
	}

	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"allocations": allocations,
	})
}
