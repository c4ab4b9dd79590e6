package main

import (
	"log"
	"strings"

	"validade-backend/internal/alimento"
	"validade-backend/internal/audit"
	"validade-backend/internal/auth"
	"validade-backend/internal/config"
	"validade-backend/internal/database"
	"validade-backend/internal/modelo"
	"validade-backend/internal/notification"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"message": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Erro interno no servidor",
			})
		},
	})

	// CORS: origens separadas por vírgula na variável de ambiente
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Autenticação (público)
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/forgot-password", auth.ForgotPasswordHandler(cfg))
	api.Post("/auth/reset-password", auth.ResetPasswordHandler(cfg))

	// Rotas protegidas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Alimentos (lotes de estoque)
	protected.Get("/alimentos", alimento.ListAlimentosHandler())
	protected.Post("/alimentos", alimento.CreateAlimentoHandler())
	protected.Patch("/alimentos/:id", alimento.UpdateAlimentoHandler())
	protected.Delete("/alimentos/:id", alimento.DeleteAlimentoHandler())
	protected.Post("/alimentos/:id/saida", alimento.RegistrarSaidaHandler())

	// Importação em massa
	protected.Post("/alimentos/import", alimento.ImportAlimentosHandler())
	protected.Post("/alimentos/import-excel", alimento.ImportAlimentosExcelHandler())

	// Modelos de produtos (templates de cadastro)
	protected.Get("/modelos-produtos", modelo.ListModelosHandler())
	protected.Get("/modelos-produtos/:codigo", modelo.GetModeloHandler())
	protected.Post("/modelos-produtos", modelo.CreateModeloHandler())
	protected.Post("/modelos-produtos/import-excel", modelo.ImportModelosExcelHandler())

	// Notificações de vencimento
	protected.Get("/notificacoes", notification.ListNotificacoesHandler())

	// Histórico (audit log)
	protected.Get("/audit-log", audit.ListAuditLogsHandler())

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
