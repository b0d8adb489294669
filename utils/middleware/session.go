package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionCookie is the name of the signed session cookie
const SessionCookie = "session"

const claimsKey = "session_claims"

// Notices shown when a guard refuses a request
const (
	MsgLoginRequired = "Please log in to access this page."
	MsgAdminRequired = "You do not have permission to access this page."
)

// AuthMiddleware resolves the session cookie into a request scoped
// auth.Identity and guards routes by access level
type AuthMiddleware struct {
	jwtManager       *auth.JWTManager
	blacklistService *auth.BlacklistService
	db               *gorm.DB
	presenter        *view.Presenter
	log              *zap.Logger
	secureCookie     bool
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB, presenter *view.Presenter, log *zap.Logger, secureCookie bool) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:       jwtManager,
		blacklistService: auth.NewBlacklistService(db),
		db:               db,
		presenter:        presenter,
		log:              log,
		secureCookie:     secureCookie,
	}
}

// Session stores the caller's identity in c.Locals. A missing, expired,
// tampered or revoked token leaves the request Anonymous.
func (m *AuthMiddleware) Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(auth.IdentityKey, auth.Identity{})

		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			// API clients may send the same token as a bearer header
			parts := strings.Split(c.Get(fiber.HeaderAuthorization), " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return c.Next()
		}

		claims, err := m.jwtManager.ValidateToken(tokenString)
		if err != nil {
			return c.Next()
		}

		isRevoked, err := m.blacklistService.IsTokenRevoked(c.Context(), claims.ID)
		if err != nil {
			m.log.Error("failed to check token status", zap.Error(err))
			return c.Next()
		}
		if isRevoked {
			return c.Next()
		}

		// The account may have been removed or its role changed since login
		var user model.User
		if err := m.db.WithContext(c.Context()).First(&user, claims.UserID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				m.log.Error("failed to load session user", zap.Error(err))
			}
			return c.Next()
		}

		c.Locals(auth.IdentityKey, auth.Identity{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		})
		c.Locals(claimsKey, claims)

		return c.Next()
	}
}

// RequireLogin sends anonymous callers to the login page
func (m *AuthMiddleware) RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.Guard(auth.CurrentIdentity(c), auth.LevelAuthenticated); err != nil {
			return m.presenter.Deny(c, "/login", fiber.StatusUnauthorized, "UNAUTHORIZED", MsgLoginRequired)
		}
		return c.Next()
	}
}

// RequireAdmin sends anonymous callers to login and other users to the
// landing page
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch auth.Guard(auth.CurrentIdentity(c), auth.LevelAdmin) {
		case nil:
			return c.Next()
		case auth.ErrAnonymous:
			return m.presenter.Deny(c, "/login", fiber.StatusUnauthorized, "UNAUTHORIZED", MsgLoginRequired)
		default:
			return m.presenter.Deny(c, "/", fiber.StatusForbidden, "FORBIDDEN", MsgAdminRequired)
		}
	}
}

// RequireAdminOrNotFound answers every non-admin with the not-found page so
// the route's existence is not revealed
func (m *AuthMiddleware) RequireAdminOrNotFound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.Guard(auth.CurrentIdentity(c), auth.LevelAdmin); err != nil {
			return m.presenter.NotFound(c)
		}
		return c.Next()
	}
}

// StartSession signs a session token for user and sets the cookie
func (m *AuthMiddleware) StartSession(c *fiber.Ctx, user *model.User) (*auth.SessionToken, error) {
	token, err := m.jwtManager.GenerateSessionToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token.Value,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HTTPOnly: true,
		Secure:   m.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return token, nil
}

// SessionTTL is the lifetime of a new session token
func (m *AuthMiddleware) SessionTTL() time.Duration {
	return m.jwtManager.Expiry()
}

// EndSession revokes the current token, if any, and clears the cookie
func (m *AuthMiddleware) EndSession(c *fiber.Ctx) {
	if claims, ok := c.Locals(claimsKey).(*auth.Claims); ok {
		expiresAt := time.Now().Add(m.jwtManager.Expiry())
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		if err := m.blacklistService.RevokeToken(c.Context(), claims.ID, claims.UserID, expiresAt, "logout"); err != nil {
			m.log.Error("failed to revoke session token", zap.Uint("user_id", claims.UserID), zap.Error(err))
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   m.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
