package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdelrazek97/form-app/api"
	"github.com/Abdelrazek97/form-app/config"
	"github.com/Abdelrazek97/form-app/database"
	"github.com/Abdelrazek97/form-app/router"
	"github.com/Abdelrazek97/form-app/services"
	"github.com/Abdelrazek97/form-app/services/cron"
	"github.com/Abdelrazek97/form-app/utils"
	"github.com/Abdelrazek97/form-app/utils/cache"
	"github.com/Abdelrazek97/form-app/utils/middleware"
	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	log, err := utils.NewLogger(getEnv.LOG_LEVEL, getEnv.GO_ENV)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := database.StartGORM(getEnv, log)
	if err != nil {
		log.Error("failed to open database", zap.String("driver", getEnv.DB_DRIVER), zap.Error(err))
		return err
	}

	if err := store.Init(); err != nil {
		log.Error("failed to run migrations", zap.Error(err))
		return err
	}

	if err := ProvisionAdmin(context.Background(), store, getEnv, log); err != nil {
		log.Error("failed to provision admin", zap.Error(err))
		return err
	}

	// Login lockouts need Redis; without it they are disabled
	var attempts middleware.AttemptStore
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Warn("redis unavailable, brute force protection disabled", zap.Error(err))
		} else {
			attempts = redisCache
		}
	}

	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(store.DB(), services.NewReportService(store.DB()), log)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.Warn("failed to start cron jobs", zap.Error(err))
			cronManager = nil
		}
	}

	// Defer closing DB, Redis and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
		store.Close()
	}()

	server := NewServer(store, getEnv, attempts, log)

	return server.Run()
}

// NewServer builds the HTTP server with its middleware and routes
func NewServer(store database.Storage, env *config.EnvironmentVariable, attempts middleware.AttemptStore, log *zap.Logger) *api.APIServer {
	sessions := session.New(session.Config{
		Expiration:     time.Hour,
		KeyLookup:      "cookie:flash_session",
		CookieHTTPOnly: true,
		CookieSecure:   env.GO_ENV == "production",
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
	presenter := view.NewPresenter(sessions, log)

	server := api.NewAPIServer(fmt.Sprintf(":%d", env.PORT), presenter, log)
	router.SetupRoutes(server.GetEngine(), store, router.Options{
		Env:       env,
		Presenter: presenter,
		Attempts:  attempts,
		Log:       log,
	})
	return server
}

// ProvisionAdmin creates the administrator from ADMIN_USERNAME and
// ADMIN_PASSWORD when both are set and no admin exists yet
func ProvisionAdmin(ctx context.Context, store database.Storage, env *config.EnvironmentVariable, log *zap.Logger) error {
	if env.ADMIN_USERNAME == "" || env.ADMIN_PASSWORD == "" {
		log.Info("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin provisioning")
		return nil
	}

	created, err := services.NewCredentialService(store.DB(), log).
		ProvisionAdmin(ctx, env.ADMIN_USERNAME, env.ADMIN_PASSWORD, env.ADMIN_FULL_NAME)
	if err != nil {
		return err
	}
	if created {
		log.Info("admin account provisioned", zap.String("username", env.ADMIN_USERNAME))
	}
	return nil
}
