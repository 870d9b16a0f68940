package http

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/auth"
)

// employeeIDFromContext pulls the authenticated employee ID out of the
// verified JWT claims.
func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", auth.ErrInvalidToken
	}
	return employeeID, nil
}
