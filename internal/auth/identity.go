package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"labreserve/internal/model"
)

// Identity is the authenticated caller as seen by services. UserID is
// always taken from the token, never from the request body.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

// IsAdmin reports whether the caller holds the administrator role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// Owns reports whether the caller owns a record belonging to userID.
func (i Identity) Owns(userID uint) bool {
	return i.UserID == userID
}

// FromContext extracts the caller identity from the echo-jwt token.
// The second return is false when no valid token is attached.
func FromContext(c echo.Context) (Identity, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return Identity{}, false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Identity{}, false
	}
	return Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, true
}
