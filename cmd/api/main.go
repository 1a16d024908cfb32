package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/SoporteChat-api/internal/application/auth"
	appchat "github.com/jhoicas/SoporteChat-api/internal/application/chat"
	"github.com/jhoicas/SoporteChat-api/internal/application/team"
	"github.com/jhoicas/SoporteChat-api/internal/application/usecase"
	infraai "github.com/jhoicas/SoporteChat-api/internal/infrastructure/ai"
	"github.com/jhoicas/SoporteChat-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/SoporteChat-api/internal/interfaces/http"
	"github.com/jhoicas/SoporteChat-api/pkg/config"
	"github.com/jhoicas/SoporteChat-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	dataRepo := postgres.NewCompanyDataRepository(pool)
	chatRepo := postgres.NewChatRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	geminiSvc := infraai.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, dataRepo)
	chatUC := appchat.NewChatUseCase(chatRepo, messageRepo, dataRepo, companyRepo, userRepo, geminiSvc, log)
	teamUC := team.NewTeamUseCase(invitationRepo, userRepo, companyRepo, txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 45, // el pipeline de chat espera al LLM hasta 30s
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SoporteChat API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CompanyUC: companyUC,
		ChatUC:    chatUC,
		TeamUC:    teamUC,
		JWTSecret: cfg.JWT.Secret,
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
