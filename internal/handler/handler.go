// Package handler contains the HTTP layer: request binding,
// validation, identity extraction and error mapping. Domain semantics
// live in the services; handlers only translate.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"labreserve/internal/auth"
	apperrors "labreserve/internal/errors"
)

// identity extracts the authenticated caller or fails with 401.
func identity(c echo.Context) (auth.Identity, error) {
	id, ok := auth.FromContext(c)
	if !ok {
		return auth.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return id, nil
}

// respondError maps a service error onto the wire taxonomy. Conflict
// errors carry their conflict list so the client can render it;
// internal errors are logged with detail and surfaced generically.
func respondError(c echo.Context, err error) error {
	if ce, ok := apperrors.AsConflict(err); ok {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:     err.Error(),
			Code:      "TIME_CONFLICT",
			Conflicts: ce.Conflicts,
		})
	}
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
