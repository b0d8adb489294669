package auth

import (
	"errors"

	"github.com/Abdelrazek97/form-app/services"
	"github.com/Abdelrazek97/form-app/utils/middleware"
	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	MsgLoginSuccess        = "Login successful!"
	MsgRegistrationSuccess = "Registration successful! Please log in."
	MsgLoggedOut           = "You have been logged out."
	MsgCredentialsRequired = "Username and password are required"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	credentials          *services.CredentialService
	sessions             *middleware.AuthMiddleware
	bruteForceProtection *middleware.BruteForceProtection
	presenter            *view.Presenter
	log                  *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	credentials *services.CredentialService,
	sessions *middleware.AuthMiddleware,
	bruteForceProtection *middleware.BruteForceProtection,
	presenter *view.Presenter,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		credentials:          credentials,
		sessions:             sessions,
		bruteForceProtection: bruteForceProtection,
		presenter:            presenter,
		log:                  log,
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	FullName string `form:"full_name" json:"full_name"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// RegisterPage handles GET /register
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return h.presenter.Page(c, fiber.StatusOK, "register", fiber.Map{"Title": "Register"})
}

// Register handles POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return h.presenter.Invalid(c, fiber.StatusBadRequest, "BAD_REQUEST", "Invalid request body", "register", nil)
	}

	data := fiber.Map{"Title": "Register", "Username": req.Username, "FullName": req.FullName}

	user, err := h.credentials.Register(c.UserContext(), req.Username, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUsername) {
			return h.presenter.Invalid(c, fiber.StatusConflict, "CONFLICT", err.Error(), "register", data)
		}
		if verr, ok := services.AsValidationError(err); ok {
			message := verr.Message
			if verr.Kind == services.KindMissingFields {
				message = MsgCredentialsRequired
			}
			return h.presenter.Invalid(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", message, "register", data)
		}
		return h.presenter.ServerError(c, err)
	}

	return h.presenter.Done(c, "/login", fiber.StatusCreated, view.Success, MsgRegistrationSuccess, UserResponse{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	})
}
