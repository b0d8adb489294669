package router

import (
	"time"

	"github.com/Abdelrazek97/form-app/config"
	"github.com/Abdelrazek97/form-app/database"
	"github.com/Abdelrazek97/form-app/handlers"
	admin_handlers "github.com/Abdelrazek97/form-app/handlers/admin"
	auth_handlers "github.com/Abdelrazek97/form-app/handlers/auth"
	evaluation_handlers "github.com/Abdelrazek97/form-app/handlers/evaluation"
	question_handlers "github.com/Abdelrazek97/form-app/handlers/question"
	record_handlers "github.com/Abdelrazek97/form-app/handlers/records"
	report_handlers "github.com/Abdelrazek97/form-app/handlers/reports"
	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/services"
	"github.com/Abdelrazek97/form-app/utils"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/Abdelrazek97/form-app/utils/metrics"
	"github.com/Abdelrazek97/form-app/utils/middleware"
	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"
)

// Options carries the collaborators SetupRoutes wires together
type Options struct {
	Env       *config.EnvironmentVariable
	Presenter *view.Presenter
	Attempts  middleware.AttemptStore // nil disables login lockouts
	Log       *zap.Logger
}

func SetupRoutes(app *fiber.App, store database.Storage, opts Options) {
	env, presenter, log := opts.Env, opts.Presenter, opts.Log
	db := store.DB()

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: env.JWT_SECRET,
		Expiry: env.SESSION_TTL,
		Issuer: env.JWT_ISSUER,
	})

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db, presenter, log, env.GO_ENV == "production")
	bruteForceProtection := middleware.NewBruteForceProtection(opts.Attempts, presenter, log)

	// Services
	credentialService := services.NewCredentialService(db, log)
	recordService := services.NewRecordService(db, log)
	reportService := services.NewReportService(db)
	evaluationService := services.NewEvaluationService(db, log)
	exportService := services.NewExportService(reportService)
	questionService := services.NewQuestionService(store.QuestionDB(), log)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(credentialService, authMiddleware, bruteForceProtection, presenter, log)
	recordHandler := record_handlers.NewRecordHandler(recordService, reportService, presenter)
	reportHandler := report_handlers.NewReportHandler(reportService, exportService, presenter, log)
	evaluationHandler := evaluation_handlers.NewEvaluationHandler(evaluationService, presenter)
	questionHandler := question_handlers.NewQuestionHandler(questionService, presenter)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    env.ALLOWED_ORIGINS,
		RateLimitRequests: env.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   1 * time.Minute,
		AccessLog:         env.GO_ENV != "test",
	})
	app.Use(middleware.RequestMetrics())
	app.Use(authMiddleware.Session())

	// Operations (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	app.Get("/", func(c *fiber.Ctx) error {
		if auth.CurrentIdentity(c).Anonymous() {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Redirect("/view", fiber.StatusSeeOther)
	})

	// Authentication
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	app.Get("/register", authHandler.RegisterPage)
	app.Post("/register", authHandler.Register)
	app.Get("/logout", authHandler.Logout)

	// Record entry forms (login)
	login := authMiddleware.RequireLogin()
	for _, page := range record_handlers.FormPages {
		app.Get(page.Path, login, recordHandler.Form(page))
		app.Post(page.Path, login, recordHandler.Submit(page))
	}

	// Owner scoped listings (login)
	app.Get("/view", login, recordHandler.Overview)
	app.Get("/records/:kind", login, recordHandler.List)

	// Admin reports (redirect when refused)
	admin := authMiddleware.RequireAdmin()
	app.Get("/view/Scientific_production", admin, reportHandler.Listing("Scientific Production", model.KindPublication))
	app.Get("/view/criteria_of_evaluation", admin, reportHandler.Listing("Evaluation Criteria", model.KindCriteria, model.KindActivity))
	app.Get("/view/university_evaluation", admin, reportHandler.Listing("University Evaluation", model.KindUniversityEvaluation))
	app.Get("/kpis", admin, reportHandler.KPIs)

	adminGroup := app.Group("/admin", admin)
	adminGroup.Get("/reports/export.xlsx", reportHandler.Export)
	adminGroup.Get("/users", func(c *fiber.Ctx) error { return admin_handlers.ListUsers(c, store, presenter) })
	adminGroup.Get("/audit", func(c *fiber.Ctx) error { return admin_handlers.ListAuditLogs(c, store, presenter) })

	// Evaluation forms (not found when refused)
	evaluator := authMiddleware.RequireAdminOrNotFound()
	for _, page := range evaluation_handlers.Pages {
		app.Get(page.Path, evaluator, evaluationHandler.Form(page))
		app.Post(page.Path, evaluator, evaluationHandler.Submit(page))
	}

	// Question bank (login, any role)
	questions := app.Group("/questions", login)
	questions.Get("/", questionHandler.List)
	questions.Get("/add", questionHandler.AddPage)
	questions.Post("/add", questionHandler.Add)
	questions.Get("/search", questionHandler.SearchPage)
	questions.Post("/search", questionHandler.Search)
	questions.Get("/:id", questionHandler.Detail)
	questions.Delete("/:id", questionHandler.Delete)
	questions.Get("/:id/edit", questionHandler.EditPage)
	questions.Post("/:id/edit", questionHandler.Edit)
	questions.Post("/:id/delete", questionHandler.Delete)

	// Registered last so unmatched paths reach the not-found page
	app.Use(func(c *fiber.Ctx) error {
		return presenter.NotFound(c)
	})
}
