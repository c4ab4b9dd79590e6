package audit

import (
	"encoding/json"

	"validade-backend/internal/database"
	"validade-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID             uint               `json:"id"`
	AlimentoID     *uint              `json:"alimentoId"`
	AlimentoCodigo *string            `json:"alimentoCodigo"`
	AlimentoNome   *string            `json:"alimentoNome"`
	Action         models.AuditAction `json:"action"`
	UserID         string             `json:"userId"`
	UserName       string             `json:"userName"`
	UserColor      string             `json:"userColor"`
	Changes        json.RawMessage    `json:"changes"`
	Timestamp      string             `json:"timestamp"`
}

// GET /api/audit-log
// Últimos 200 registros, mais recentes primeiro, com a cor de cada usuário.
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var logs []models.AuditLog
		if err := database.DB.
			Order("timestamp DESC, id DESC").
			Limit(200).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao listar histórico")
		}

		// Cores dos usuários que aparecem nos logs (join denormalizado)
		cores := map[string]string{}
		ids := make([]string, 0, len(logs))
		for _, l := range logs {
			if _, ok := cores[l.UserID]; !ok {
				cores[l.UserID] = ""
				ids = append(ids, l.UserID)
			}
		}
		if len(ids) > 0 {
			var users []models.User
			if err := database.DB.Where("id IN ?", ids).Find(&users).Error; err == nil {
				for _, u := range users {
					cores[u.ID] = u.Color
				}
			}
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			changes := json.RawMessage(l.Changes)
			if len(changes) == 0 {
				changes = json.RawMessage("null")
			}
			resp = append(resp, AuditLogResponse{
				ID:             l.ID,
				AlimentoID:     l.AlimentoID,
				AlimentoCodigo: l.AlimentoCodigo,
				AlimentoNome:   l.AlimentoNome,
				Action:         l.Action,
				UserID:         l.UserID,
				UserName:       l.UserName,
				UserColor:      cores[l.UserID],
				Changes:        changes,
				Timestamp:      l.Timestamp.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}
