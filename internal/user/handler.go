package user

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/satriajanaka/workforce-management/internal/auth"
	"github.com/satriajanaka/workforce-management/internal/transport"
	"github.com/satriajanaka/workforce-management/pkg/logger"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	ListPending(ctx context.Context) ([]*User, error)
	ApproveUser(ctx context.Context, id int64) (*User, error)
	LinkProfile(ctx context.Context, userID int64, email string) (*User, error)
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

// GetCurrentUser returns the caller's own account.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal := auth.UserFromContext(r.Context())
	if principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	u, err := h.Service.GetByID(r.Context(), principal.ID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service error", "error", err, "user_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// ListPendingUsers lists accounts waiting for approval.
func (h *Handler) ListPendingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListPending(r.Context())
	if err != nil {
		h.Logger.Error("ListPendingUsers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
	})
}

// ApproveUser verifies a pending account.
func (h *Handler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	u, err := h.Service.ApproveUser(r.Context(), id)
	if err != nil {
		h.Logger.Error("ApproveUser: service error", "error", err, "user_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// LinkProfile links the caller's account to an employee profile by email.
func (h *Handler) LinkProfile(w http.ResponseWriter, r *http.Request) {
	principal := auth.UserFromContext(r.Context())
	if principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto LinkProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	u, err := h.Service.LinkProfile(r.Context(), principal.ID, dto.Email)
	if err != nil {
		h.Logger.Error("LinkProfile: service error", "error", err, "user_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}
