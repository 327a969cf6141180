package http

import (
	"encoding/json"
	"net/http"

	"github.com/mkhasanov/go-user-guard/internal/logger"
	"github.com/mkhasanov/go-user-guard/internal/utils"
	"github.com/mkhasanov/go-user-guard/models"
)

func (h *Handler) blockUsers(w http.ResponseWriter, r *http.Request) {
	h.applyStatusBatch(w, r, models.StatusBlocked)
}

func (h *Handler) unblockUsers(w http.ResponseWriter, r *http.Request) {
	h.applyStatusBatch(w, r, models.StatusActive)
}

// applyStatusBatch is the shared body of blockUsers and unblockUsers: the two
// endpoints differ only in the status they set.
func (h *Handler) applyStatusBatch(w http.ResponseWriter, r *http.Request, status models.UserStatus) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.AdminService.ApplyStatus(ctx, req.UserIDs, status)
	if err != nil {
		log.Err(err).Str("status", string(status)).Msg("batch status update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) deleteUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.AdminService.DeleteUsers(ctx, req.UserIDs)
	if err != nil {
		log.Err(err).Msg("batch user delete failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	users, err := h.services.AdminService.ListUsers(ctx)
	if err != nil {
		log.Err(err).Msg("user listing failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}
