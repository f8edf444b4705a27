package http

import (
	"net/http"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/balance"
	"github.com/peoplekit/hrledger-backend-go/internal/handler/http/response"
)

type BalanceHandler interface {
	GetMy(w http.ResponseWriter, r *http.Request)
}

type BalanceHandlerImpl struct {
	balanceService balance.Service
}

func NewBalanceHandler(balanceService balance.Service) BalanceHandler {
	return &BalanceHandlerImpl{balanceService: balanceService}
}

// GetMy implements BalanceHandler.
func (h *BalanceHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	record, err := h.balanceService.EnsureRecord(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}
