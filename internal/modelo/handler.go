package modelo

import (
	"validade-backend/internal/auth"
	"validade-backend/internal/database"
	"validade-backend/internal/models"
	"validade-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CreateModeloRequest struct {
	CodigoProduto      string   `json:"codigoProduto" validate:"required"`
	Descricao          string   `json:"descricao" validate:"required"`
	Temperatura        string   `json:"temperatura" validate:"required"`
	ShelfLife          int      `json:"shelfLife" validate:"required,min=1"`
	Gtin               *string  `json:"gtin"`
	PesoEmbalagem      *float64 `json:"pesoEmbalagem"`
	PesoPorCaixa       *float64 `json:"pesoPorCaixa"`
	Empresa            *string  `json:"empresa"`
	PesoLiquido        *float64 `json:"pesoLiquido"`
	TipoPeso           *string  `json:"tipoPeso"`
	QuantidadePorCaixa *int     `json:"quantidadePorCaixa"`
	UnidadePadrao      string   `json:"unidadePadrao" validate:"omitempty,oneof=kg caixa"`
}

// GET /api/modelos-produtos
func ListModelosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var modelos []models.ModeloProduto
		if err := database.DB.Order("created_at DESC").Find(&modelos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao listar modelos de produtos")
		}
		return c.JSON(modelos)
	}
}

// GET /api/modelos-produtos/:codigo
func GetModeloHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		codigo := c.Params("codigo")

		var modelo models.ModeloProduto
		if err := database.DB.Where("codigo_produto = ?", codigo).First(&modelo).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Modelo não encontrado")
		}
		return c.JSON(modelo)
	}
}

// POST /api/modelos-produtos
func CreateModeloHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(auth.CtxUserIDKey)
		userID, ok := userIDVal.(string)
		if !ok || userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Não autenticado")
		}

		var body CreateModeloRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if err := validation.Validar(body); err != nil {
			return err
		}

		modelo := modeloDoRequest(body, userID)
		if err := database.DB.Create(&modelo).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Erro ao criar modelo de produto")
		}

		return c.JSON(modelo)
	}
}

func modeloDoRequest(body CreateModeloRequest, userID string) models.ModeloProduto {
	unidade := body.UnidadePadrao
	if unidade == "" {
		unidade = models.UnidadeKg
	}
	return models.ModeloProduto{
		CodigoProduto:      body.CodigoProduto,
		Descricao:          body.Descricao,
		Temperatura:        body.Temperatura,
		ShelfLife:          body.ShelfLife,
		Gtin:               body.Gtin,
		PesoEmbalagem:      body.PesoEmbalagem,
		PesoPorCaixa:       body.PesoPorCaixa,
		Empresa:            body.Empresa,
		PesoLiquido:        body.PesoLiquido,
		TipoPeso:           body.TipoPeso,
		QuantidadePorCaixa: body.QuantidadePorCaixa,
		UnidadePadrao:      unidade,
		CadastradoPor:      userID,
	}
}
