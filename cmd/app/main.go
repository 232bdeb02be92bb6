package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/MorneNemdil/lovejoy-security-project/external/resend"

	"github.com/MorneNemdil/lovejoy-security-project/internal/config"
	"github.com/MorneNemdil/lovejoy-security-project/internal/db"
	"github.com/MorneNemdil/lovejoy-security-project/internal/middleware"
	"github.com/MorneNemdil/lovejoy-security-project/internal/repository"
	"github.com/MorneNemdil/lovejoy-security-project/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const sessionTTL = 24 * time.Hour

func main() {
	// ======================
	// CONFIG + LOGGING
	// ======================
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// ======================
	// INFRA
	// ======================
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// ======================
	// EXTERNALS
	// ======================
	var sender services.EmailSender
	if cfg.ResendAPIKey != "" {
		sender, err = resend.NewResendMailer(cfg.ResendAPIKey, cfg.ResendFrom)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		sender = services.NewLogEmailSender(logger)
	}

	// ======================
	// REPOSITORIES
	// ======================
	accountRepo := repository.NewAccountRepository(pool)
	evalRepo := repository.NewEvaluationRepository(pool)

	// ======================
	// SERVICES
	// ======================
	hasher := services.NewPasswordHasher()
	issuer := middleware.NewTokenIssuer([]byte(cfg.JWTSecret), sessionTTL, logger)
	authSvc := services.NewAuthService(accountRepo, hasher)
	resetSvc := services.NewResetService(accountRepo, hasher, sender, cfg.ResetLinkBase, logger)
	uploadSvc := services.NewUploadService(cfg.UploadDir)
	evalSvc := services.NewEvaluationService(evalRepo, uploadSvc, logger)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit(cfg.MaxUploadSize))

	api := e.Group("/api")

	api.GET("/test", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Lovejoy API is running"})
	})

	// ======================
	// ROUTES
	// ======================
	registerAuthRoutes(api, authSvc, resetSvc, issuer)
	registerEvaluationRoutes(api, evalSvc, issuer)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}
