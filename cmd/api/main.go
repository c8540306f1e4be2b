package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/seu-usuario/cobrancas-api/internal/application/auth"
	"github.com/seu-usuario/cobrancas-api/internal/application/disparo"
	appsync "github.com/seu-usuario/cobrancas-api/internal/application/sync"
	"github.com/seu-usuario/cobrancas-api/internal/application/usecase"
	"github.com/seu-usuario/cobrancas-api/internal/infrastructure/postgres"
	"github.com/seu-usuario/cobrancas-api/internal/infrastructure/webhook"
	httpRouter "github.com/seu-usuario/cobrancas-api/internal/interfaces/http"
	"github.com/seu-usuario/cobrancas-api/pkg/config"
	"github.com/seu-usuario/cobrancas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	if cfg.Webhook.URL == "" {
		// Boot segue; só o fluxo de disparo vai falhar, com erro claro.
		log.Warn().Msg("WEBHOOK_URL não configurada: disparos vão falhar com erro de configuração")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	cobrancaRepo := postgres.NewCobrancaRepository(pool)

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	cobrancaUC := usecase.NewCobrancaUseCase(cobrancaRepo, clienteRepo)

	notificador := webhook.NewCliente(cfg.Webhook.URL, log)
	disparoUC := disparo.NewUseCase(cobrancaRepo, notificador, cfg.Webhook.URL, log)

	listener := postgres.NewListener(pool, log)
	reconciler := appsync.NewReconciler(cobrancaRepo, listener.Eventos(), log)

	go func() {
		if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("escuta de notificações finalizada")
		}
	}()
	go func() {
		if err := reconciler.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("reconciliação finalizada")
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// Sem WriteTimeout: o stream SSE e o POST ao webhook (até 25s)
		// vivem mais que qualquer limite razoável de escrita.
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ClienteUC:  clienteUC,
		CobrancaUC: cobrancaUC,
		DisparoUC:  disparoUC,
		Reconciler: reconciler,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
