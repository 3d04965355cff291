// @title        Lead Manager API
// @version      1.0
// @description  API de referidos: leads, elegibilidad y ganancias por empleado.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/DheemanKumar/lead-manager/docs"
	"github.com/DheemanKumar/lead-manager/internal/application/auth"
	"github.com/DheemanKumar/lead-manager/internal/application/leads"
	"github.com/DheemanKumar/lead-manager/internal/application/ports"
	"github.com/DheemanKumar/lead-manager/internal/domain/eligibility"
	"github.com/DheemanKumar/lead-manager/internal/domain/transition"
	"github.com/DheemanKumar/lead-manager/internal/infrastructure/extractor"
	inframetrics "github.com/DheemanKumar/lead-manager/internal/infrastructure/metrics"
	infrapdf "github.com/DheemanKumar/lead-manager/internal/infrastructure/pdf"
	"github.com/DheemanKumar/lead-manager/internal/infrastructure/postgres"
	infraredis "github.com/DheemanKumar/lead-manager/internal/infrastructure/redis"
	"github.com/DheemanKumar/lead-manager/internal/infrastructure/storage"
	httpRouter "github.com/DheemanKumar/lead-manager/internal/interfaces/http"
	"github.com/DheemanKumar/lead-manager/pkg/config"
	"github.com/DheemanKumar/lead-manager/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("esquema actualizado")
	}

	// Redis es opcional: sin REDIS_URL el leaderboard se calcula siempre desde la DB.
	var leaderboardCache ports.LeaderboardCache
	redisClient, err := infraredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
		leaderboardCache = infraredis.NewLeaderboardCache(redisClient, "", cfg.Redis.CacheTTL)
		log.Info().Dur("ttl", cfg.Redis.CacheTTL).Msg("cache del leaderboard en Redis")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := inframetrics.New(reg)

	rules, err := eligibility.LoadRules(cfg.Leads.RulesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("reglas de elegibilidad")
	}
	rules.RequireResume = rules.RequireResume || cfg.Leads.RequireResume
	transitionPolicy, err := transition.ParsePolicy(cfg.Leads.TransitionPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("política de transición")
	}

	blobs, err := storage.NewLocalBlobStore(cfg.Storage.UploadsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de CVs")
	}
	resumeExtractor := extractor.NewResumeExtractor(blobs, rules.ResumeKeywords)

	userRepo := postgres.NewUserRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	submitUC := leads.NewSubmitLeadUseCase(
		txRunner, eligibility.NewEvaluator(rules), blobs, resumeExtractor,
		leaderboardCache, metrics, leads.DuplicatePolicy(cfg.Leads.DuplicatePolicy), cfg.Leads.CreditValue, log,
	)
	transitionUC := leads.NewTransitionStatusUseCase(txRunner, transitionPolicy, cfg.Leads.CreditValue, metrics, log)
	dashboardUC := leads.NewDashboardUseCase(leadRepo, userRepo)
	earningsUC := leads.NewEarningsUseCase(txRunner, userRepo, cfg.Leads.CreditValue, metrics, log)
	statementUC := leads.NewStatementUseCase(earningsUC, infrapdf.NewStatementGenerator())
	leaderboardUC := leads.NewLeaderboardUseCase(leadRepo, leaderboardCache, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.Storage.UploadMaxBytes + 1024*1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware(metrics))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Lead Manager API",
		}))
	}
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	app.Get("/health", func(c *fiber.Ctx) error {
		checks := fiber.Map{"database": "ok"}
		status := fiber.StatusOK
		if err := pool.Ping(c.UserContext()); err != nil {
			checks["database"] = "down"
			status = fiber.StatusServiceUnavailable
		}
		if redisClient != nil {
			checks["redis"] = "ok"
			if err := redisClient.Ping(c.UserContext()).Err(); err != nil {
				// El cache es opcional: Redis caído degrada pero no tumba el servicio.
				checks["redis"] = "down"
			}
		}
		return c.Status(status).JSON(fiber.Map{"status": statusLabel(status), "service": cfg.App.Name, "checks": checks})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		SubmitLead:     submitUC,
		Transition:     transitionUC,
		Dashboard:      dashboardUC,
		Earnings:       earningsUC,
		Statement:      statementUC,
		Leaderboard:    leaderboardUC,
		JWTSecret:      cfg.JWT.Secret,
		UploadMaxBytes: cfg.Storage.UploadMaxBytes,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func statusLabel(status int) string {
	if status == fiber.StatusOK {
		return "ok"
	}
	return "degraded"
}
