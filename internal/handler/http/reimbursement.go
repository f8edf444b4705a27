package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/reimbursement"
	"github.com/peoplekit/hrledger-backend-go/internal/handler/http/response"
)

type ReimbursementHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type ReimbursementHandlerImpl struct {
	reimbursementService reimbursement.Service
}

func NewReimbursementHandler(reimbursementService reimbursement.Service) ReimbursementHandler {
	return &ReimbursementHandlerImpl{reimbursementService: reimbursementService}
}

// Create implements ReimbursementHandler.
func (h *ReimbursementHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req reimbursement.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claim, err := h.reimbursementService.Create(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Reimbursement claim submitted", claim)
}

// Cancel implements ReimbursementHandler.
func (h *ReimbursementHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	claimID := chi.URLParam(r, "id")
	claim, err := h.reimbursementService.Cancel(r.Context(), actor, claimID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reimbursement claim cancelled", claim)
}

// GetMy implements ReimbursementHandler.
func (h *ReimbursementHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	claims, err := h.reimbursementService.MyClaims(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, claims)
}

// Pending implements ReimbursementHandler.
func (h *ReimbursementHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	claims, err := h.reimbursementService.Pending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, claims)
}

// Approve implements ReimbursementHandler.
func (h *ReimbursementHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	claimID := chi.URLParam(r, "id")
	claim, err := h.reimbursementService.Approve(r.Context(), actor, claimID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reimbursement claim approved", claim)
}

// Reject implements ReimbursementHandler.
func (h *ReimbursementHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req reimbursement.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claimID := chi.URLParam(r, "id")
	claim, err := h.reimbursementService.Reject(r.Context(), actor, claimID, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reimbursement claim rejected", claim)
}
