package http

import (
	"net/http"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
	"github.com/peoplekit/hrledger-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	GetMyTeam(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employees employee.Repository
}

func NewEmployeeHandler(employees employee.Repository) EmployeeHandler {
	return &EmployeeHandlerImpl{employees: employees}
}

// GetMyTeam implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	team, err := h.employees.ListByManager(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, team)
}
