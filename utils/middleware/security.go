package middleware

import (
	"strings"
	"time"

	"github.com/Abdelrazek97/form-app/utils/response"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// SecurityConfig holds security middleware configuration
type SecurityConfig struct {
	AllowedOrigins    string
	RateLimitRequests int // per IP per window, 0 disables
	RateLimitWindow   time.Duration
	AccessLog         bool
}

// contentSecurityPolicy allows the inline <style> in the page layout and
// nothing from other origins
const contentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; form-action 'self'; frame-ancestors 'self'"

// monitorPaths are polled by monitoring and never rate limited
var monitorPaths = map[string]bool{"/ping": true, "/metrics": true}

// SetupSecurity installs the shared middleware in order
func SetupSecurity(app *fiber.App, config SecurityConfig) {
	for _, h := range securityStack(config) {
		app.Use(h)
	}
}

func securityStack(config SecurityConfig) []fiber.Handler {
	stack := []fiber.Handler{requestid.New()}

	if config.AccessLog {
		stack = append(stack, logger.New(logger.Config{
			Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${locals:requestid}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	stack = append(stack,
		recover.New(recover.Config{EnableStackTrace: true}),
		helmet.New(helmet.Config{
			XSSProtection:         "1; mode=block",
			ContentTypeNosniff:    "nosniff",
			XFrameOptions:         "SAMEORIGIN",
			ReferrerPolicy:        "same-origin",
			ContentSecurityPolicy: contentSecurityPolicy,
		}),
	)

	// Pages post same-origin forms; CORS only matters for listed API origins
	if origins := strings.TrimSpace(config.AllowedOrigins); origins != "" {
		stack = append(stack, cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     "GET,POST,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
			AllowCredentials: true,
			MaxAge:           int((24 * time.Hour).Seconds()),
		}))
	}

	if config.RateLimitRequests > 0 {
		window := config.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		stack = append(stack, limiter.New(limiter.Config{
			Next:       func(c *fiber.Ctx) bool { return monitorPaths[c.Path()] },
			Max:        config.RateLimitRequests,
			Expiration: window,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return response.TooManyRequests(c, "Too many requests. Please try again later.")
			},
		}))
	}

	return stack
}
