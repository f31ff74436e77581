package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// claimsEmployeeID extracts the authenticated employee's id from the JWT.
// AuthRequired guarantees the claim is present on protected routes.
func claimsEmployeeID(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	employeeID, _ := claims["employee_id"].(string)
	return employeeID
}
