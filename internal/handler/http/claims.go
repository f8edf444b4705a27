package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
)

var errMissingIdentity = errors.New("token carries no employee identity")

// actorFromRequest reads the authenticated actor out of the verified token
// claims. AuthRequired runs first, so a failure here is a malformed token,
// not a missing one.
func actorFromRequest(r *http.Request) (employee.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return employee.Actor{}, err
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return employee.Actor{}, errMissingIdentity
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return employee.Actor{}, errMissingIdentity
	}
	role := employee.Role(roleStr)
	if !role.Valid() {
		return employee.Actor{}, errMissingIdentity
	}

	return employee.Actor{ID: employeeID, Role: role}, nil
}
