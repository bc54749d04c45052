package app

import (
	"context"
	"errors"
	"time"

	"sgp/internal/cache"
	"sgp/internal/config"
	"sgp/internal/database"
	"sgp/internal/handlers"
	"sgp/internal/middleware"
	"sgp/internal/repositories"
	"sgp/internal/services"
	"sgp/pkg/logutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Deps are the external resources the HTTP application runs on. Cache and
// Publisher are optional.
type Deps struct {
	DB        *gorm.DB
	Cache     cache.Cache
	Publisher services.EventPublisher
}

// New wires repositories, services, handlers and middleware into a fiber app.
func New(cfg *config.Config, deps Deps) *fiber.App {
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}

	usuarioRepo := repositories.NewGORMUsuarioRepository(deps.DB)
	projetoRepo := repositories.NewGORMProjetoRepository(deps.DB)
	tarefaRepo := repositories.NewGORMTarefaRepository(deps.DB)

	opts := services.Options{
		Cache:     deps.Cache,
		CacheTTL:  cfg.CacheTTL,
		Publisher: deps.Publisher,
	}
	hasher := services.NewSenhaHasher(cfg.SenhaPepper, cfg.BcryptCost)
	authService := services.NewAuthService(usuarioRepo, hasher, cfg.JWTSecret, cfg.JWTTTL)
	usuarioService := services.NewUsuarioService(usuarioRepo, projetoRepo, tarefaRepo, hasher, opts)
	projetoService := services.NewProjetoService(projetoRepo, usuarioRepo, tarefaRepo, opts)
	tarefaService := services.NewTarefaService(tarefaRepo, projetoRepo, usuarioRepo, opts)

	app := fiber.New(fiber.Config{
		AppName:      "sgp",
		ErrorHandler: errorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.RateLimiter(middleware.PerMinute(cfg.RateLimitPerMin), cfg.RateLimitBurst))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/ready", readiness(deps))

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService, usuarioService).RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewUsuarioHandler(usuarioService).RegisterRoutes(protectedRoutes)
	handlers.NewProjetoHandler(projetoService).RegisterRoutes(protectedRoutes)
	handlers.NewTarefaHandler(tarefaService).RegisterRoutes(protectedRoutes)

	return app
}

// readiness reports 503 until the database and the cache answer.
func readiness(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		checks := fiber.Map{"database": "ok", "cache": "ok"}
		ready := true
		if err := database.Health(ctx, deps.DB); err != nil {
			checks["database"] = err.Error()
			ready = false
		}
		if err := deps.Cache.Health(ctx); err != nil {
			checks["cache"] = err.Error()
			ready = false
		}

		if !ready {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
				"checks": checks,
			})
		}
		return c.JSON(fiber.Map{
			"status": "ready",
			"checks": checks,
			"pool":   database.Stats(deps.DB),
		})
	}
}

// errorHandler renders errors that escape the handlers as JSON.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		logutils.Log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
	}
	return c.Status(code).JSON(fiber.Map{"message": message})
}
