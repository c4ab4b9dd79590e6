package notification

import (
	"strings"
	"time"

	"validade-backend/internal/alimento"
	"validade-backend/internal/database"
	"validade-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/notificacoes?dispensadas=12-2025-01-30,15-2025-02-10
// As chaves dispensadas são estado do cliente e chegam na query string.
// abrir_painel indica ao front que o painel deve abrir sozinho (e fechar
// quando a lista esvaziar).
func ListNotificacoesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var alimentos []models.Alimento
		if err := database.DB.Order("created_at DESC").Find(&alimentos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao listar alimentos")
		}

		hoje := time.Now()
		computados := make([]models.AlimentoComputado, 0, len(alimentos))
		for _, a := range alimentos {
			computados = append(computados, alimento.ComputarCampos(a, hoje))
		}

		dispensadas := map[string]bool{}
		for _, chave := range strings.Split(c.Query("dispensadas"), ",") {
			if chave = strings.TrimSpace(chave); chave != "" {
				dispensadas[chave] = true
			}
		}

		notificacoes := Coletar(computados, dispensadas)

		return c.JSON(fiber.Map{
			"notificacoes": notificacoes,
			"abrir_painel": len(notificacoes) > 0,
		})
	}
}
