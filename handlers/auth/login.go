package auth

import (
	"errors"

	"github.com/Abdelrazek97/form-app/services"
	authutil "github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/Abdelrazek97/form-app/utils/metrics"
	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LoginRequest represents a user login request
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // in seconds
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return h.presenter.Page(c, fiber.StatusOK, "login", fiber.Map{"Title": "Login"})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.presenter.Invalid(c, fiber.StatusBadRequest, "BAD_REQUEST", "Invalid request body", "login", nil)
	}

	user, err := h.credentials.Verify(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			metrics.LoginFailures.Inc()
			h.bruteForceProtection.RecordFailedAttempt(c, req.Username)
			return h.presenter.Invalid(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error(), "login",
				fiber.Map{"Title": "Login", "Username": req.Username})
		}
		return h.presenter.ServerError(c, err)
	}

	h.bruteForceProtection.RecordSuccessfulAttempt(c)

	token, err := h.sessions.StartSession(c, user)
	if err != nil {
		return h.presenter.ServerError(c, err)
	}

	h.log.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("role", user.Role))

	return h.presenter.Done(c, "/view", fiber.StatusOK, view.Success, MsgLoginSuccess, LoginResponse{
		User: UserResponse{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Role:     user.Role,
		},
		Token:     token.Value,
		ExpiresIn: int(h.sessions.SessionTTL().Seconds()),
	})
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	identity := authutil.CurrentIdentity(c)
	h.sessions.EndSession(c)
	if !identity.Anonymous() {
		h.log.Info("user logged out", zap.Uint("user_id", identity.UserID))
	}
	return h.presenter.Done(c, "/login", fiber.StatusOK, view.Info, MsgLoggedOut, nil)
}
