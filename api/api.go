package api

import (
	"errors"

	"github.com/Abdelrazek97/form-app/utils/response"
	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
	log           *zap.Logger
}

func NewAPIServer(listenAddress string, presenter *view.Presenter, log *zap.Logger) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:               "form-app",
			Views:                 view.NewEngine(),
			ErrorHandler:          errorHandler(presenter),
			DisableStartupMessage: true,
		}),
		listenAddress: listenAddress,
		log:           log,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	s.log.Info("starting API server", zap.String("address", s.listenAddress))

	return s.app.Listen(s.listenAddress)
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

// errorHandler turns errors escaping a handler into the not-found page, the
// JSON envelope or a logged 500
func errorHandler(presenter *view.Presenter) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var e *fiber.Error
		if !errors.As(err, &e) {
			return presenter.ServerError(c, err)
		}

		switch {
		case e.Code == fiber.StatusNotFound:
			return presenter.NotFound(c)
		case e.Code >= fiber.StatusInternalServerError:
			return presenter.ServerError(c, err)
		case view.WantsJSON(c):
			return response.Error(c, e.Code, e.Message, "REQUEST_ERROR")
		default:
			return c.Status(e.Code).SendString(e.Message)
		}
	}
}
