package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/seu-usuario/cobrancas-api/internal/application/auth"
	"github.com/seu-usuario/cobrancas-api/internal/application/disparo"
	"github.com/seu-usuario/cobrancas-api/internal/application/sync"
	"github.com/seu-usuario/cobrancas-api/internal/application/usecase"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ClienteUC  *usecase.ClienteUseCase
	CobrancaUC *usecase.CobrancaUseCase
	DisparoUC  *disparo.UseCase
	Reconciler *sync.Reconciler
	JWTSecret  string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	// Preflight responde 200 (não 204) com os headers permissivos,
	// o contrato que o cliente web espera.
	app.Use(func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodOptions {
			return c.Next()
		}
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "authorization, x-client-info, apikey, content-type")
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "authorization, x-client-info, apikey, content-type",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clientes (protegido)
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Delete("/:id", clienteHandler.Delete)

	// Cobranças (protegido)
	cobrancas := protected.Group("/cobrancas")
	cobrancaHandler := NewCobrancaHandler(deps.CobrancaUC)
	cobrancas.Post("/", cobrancaHandler.Create)
	cobrancas.Get("/", cobrancaHandler.List)
	cobrancas.Patch("/:id/ativa", cobrancaHandler.SetAtiva)
	cobrancas.Delete("/:id", cobrancaHandler.Delete)

	// Disparo manual (protegido)
	disparoHandler := NewDisparoHandler(deps.DisparoUC)
	protected.Post("/disparos", disparoHandler.Disparar)

	// Painel de disparos (protegido)
	disparadorHandler := NewDisparadorHandler(deps.Reconciler)
	protected.Get("/disparador", disparadorHandler.Snapshot)
	protected.Get("/disparador/stream", disparadorHandler.Stream)
}
