package http

import (
	"encoding/json"
	"net/http"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
	"github.com/peoplekit/hrledger-backend-go/internal/handler/http/response"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	DevToken(w http.ResponseWriter, r *http.Request)
}

// AuthHandlerImpl issues access tokens directly from an employee ID. The
// real identity provider lives outside this service; this endpoint stands
// in for it and is only routed outside production.
type AuthHandlerImpl struct {
	jwtService jwt.Service
	employees  employee.Repository
}

func NewAuthHandler(jwtService jwt.Service, employees employee.Repository) AuthHandler {
	return &AuthHandlerImpl{jwtService: jwtService, employees: employees}
}

type devTokenRequest struct {
	EmployeeID string `json:"employee_id"`
}

// DevToken implements AuthHandler.
func (h *AuthHandlerImpl) DevToken(w http.ResponseWriter, r *http.Request) {
	var req devTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	emp, err := h.employees.GetByID(r.Context(), req.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !emp.Active {
		response.HandleError(w, employee.ErrEmployeeInactive)
		return
	}

	managerID := ""
	if emp.ManagerID != nil {
		managerID = *emp.ManagerID
	}
	token, expiresAt, err := h.jwtService.GenerateAccessToken(emp.ID, emp.Role, managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"access_token": token,
		"expires_at":   expiresAt,
	})
}
