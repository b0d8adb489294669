package auth

import (
	"errors"

	"github.com/Abdelrazek97/form-app/model"
	"github.com/gofiber/fiber/v2"
)

// IdentityKey is the c.Locals key holding the request's Identity
const IdentityKey = "identity"

var (
	ErrAnonymous = errors.New("authentication required")
	ErrForbidden = errors.New("insufficient permissions")
)

// Level is the access level an operation requires
type Level int

const (
	LevelAuthenticated Level = iota + 1
	LevelAdmin
)

// Identity is the request scoped principal. The zero value is Anonymous.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Anonymous reports whether no user is logged in
func (i Identity) Anonymous() bool {
	return i.UserID == 0
}

func (i Identity) IsAdmin() bool {
	return !i.Anonymous() && i.Role == model.RoleAdmin
}

// Guard checks identity against the required level
func Guard(identity Identity, level Level) error {
	if identity.Anonymous() {
		return ErrAnonymous
	}
	if level == LevelAdmin && !identity.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// CurrentIdentity returns the identity stored for this request, or
// Anonymous when none was set
func CurrentIdentity(c *fiber.Ctx) Identity {
	if id, ok := c.Locals(IdentityKey).(Identity); ok {
		return id
	}
	return Identity{}
}
