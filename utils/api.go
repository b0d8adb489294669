package utils

import (
	"github.com/Abdelrazek97/form-app/database"
	fiber "github.com/gofiber/fiber/v2"
)

// StoreHandlerFunc is a handler that reads the storage layer directly
type StoreHandlerFunc func(c *fiber.Ctx, store database.Storage) error

// MakeHTTPHandleFunc binds store to handler. Errors are left to the app's
// error handler.
func MakeHTTPHandleFunc(handler StoreHandlerFunc, store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return handler(c, store)
	}
}
