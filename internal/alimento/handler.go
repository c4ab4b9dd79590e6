package alimento

import (
	"log"
	"time"

	"validade-backend/internal/audit"
	"validade-backend/internal/auth"
	"validade-backend/internal/database"
	"validade-backend/internal/models"
	"validade-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CreateAlimentoRequest struct {
	CodigoProduto  string               `json:"codigoProduto" validate:"required"`
	Nome           string               `json:"nome" validate:"required"`
	Unidade        string               `json:"unidade" validate:"required,oneof=kg caixa"`
	Lote           string               `json:"lote"`
	DataFabricacao string               `json:"dataFabricacao" validate:"required"`
	DataValidade   string               `json:"dataValidade" validate:"required"`
	Quantidade     *float64             `json:"quantidade" validate:"required,gte=0"`
	PesoPorCaixa   *float64             `json:"pesoPorCaixa"`
	Temperatura    string               `json:"temperatura" validate:"required"`
	ShelfLife      int                  `json:"shelfLife" validate:"required,min=1"`
	Categoria      *string              `json:"categoria"`
	AlertasConfig  models.AlertasConfig `json:"alertasConfig"`
}

// UpdateAlimentoRequest: PATCH parcial, só os campos enviados são aplicados.
// Os ponteiros + omitempty garantem que o payload "depois" gravado na
// auditoria contenha apenas o que de fato mudou.
type UpdateAlimentoRequest struct {
	CodigoProduto  *string               `json:"codigoProduto,omitempty"`
	Nome           *string               `json:"nome,omitempty"`
	Unidade        *string               `json:"unidade,omitempty"`
	Lote           *string               `json:"lote,omitempty"`
	DataFabricacao *string               `json:"dataFabricacao,omitempty"`
	DataValidade   *string               `json:"dataValidade,omitempty"`
	Quantidade     *float64              `json:"quantidade,omitempty"`
	PesoPorCaixa   *float64              `json:"pesoPorCaixa,omitempty"`
	Temperatura    *string               `json:"temperatura,omitempty"`
	ShelfLife      *int                  `json:"shelfLife,omitempty"`
	Categoria      *string               `json:"categoria,omitempty"`
	AlertasConfig  *models.AlertasConfig `json:"alertasConfig,omitempty"`
}

type SaidaRequest struct {
	Quantidade float64 `json:"quantidade"`
}

// Payload do registro SAIDA na auditoria
type saidaChanges struct {
	QuantidadeSaida float64 `json:"quantidadeSaida"`
	EstoqueAntes    float64 `json:"estoqueAntes"`
	EstoqueDepois   float64 `json:"estoqueDepois"`
	DataSaida       string  `json:"dataSaida"`
	LoteSaida       string  `json:"loteSaida"`
	CadastradoPor   string  `json:"cadastradoPor"`
	DataEntrada     string  `json:"dataEntrada"`

	// Valor inserido pela primeira vez no histórico; se não houver,
	// cai na quantidade imediatamente anterior à saída
	QuantidadeInicial float64 `json:"quantidadeInicial"`

	// Valor vindo só do histórico (null quando não encontrado),
	// guardado à parte para facilitar a auditoria
	QuantidadeInicialCriacao *float64 `json:"quantidadeInicialCriacao"`
}

func usuarioAtual(c *fiber.Ctx) (string, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", "", fiber.NewError(fiber.StatusUnauthorized, "Não autenticado")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return "", "", fiber.NewError(fiber.StatusUnauthorized, "Usuário não encontrado")
	}
	return user.ID, user.Nome, nil
}

// GET /api/alimentos
// Devolve todos os alimentos já com os campos computados (status, alerta,
// dias restantes, peso total). A computação acontece em toda leitura.
func ListAlimentosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var alimentos []models.Alimento
		if err := database.DB.Order("created_at DESC").Find(&alimentos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao listar alimentos")
		}

		hoje := time.Now()
		computados := make([]models.AlimentoComputado, 0, len(alimentos))
		for _, a := range alimentos {
			computados = append(computados, ComputarCampos(a, hoje))
		}

		return c.JSON(computados)
	}
}

// POST /api/alimentos
func CreateAlimentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := usuarioAtual(c)
		if err != nil {
			return err
		}

		var body CreateAlimentoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if err := validation.Validar(body); err != nil {
			return err
		}

		criado, err := criarAlimento(body, userID, userName, false)
		if err != nil {
			return err
		}

		return c.JSON(criado)
	}
}

// criarAlimento: caminho comum ao cadastro individual e à importação em
// massa. A data de entrada SEMPRE vem do servidor; lote ausente vira o
// padrão "LOTE-01".
func criarAlimento(body CreateAlimentoRequest, userID, userName string, importado bool) (models.Alimento, error) {
	lote := body.Lote
	if lote == "" {
		lote = "LOTE-01"
	}

	a := models.Alimento{
		CodigoProduto:  body.CodigoProduto,
		Nome:           body.Nome,
		Unidade:        body.Unidade,
		Lote:           lote,
		DataFabricacao: body.DataFabricacao,
		DataValidade:   body.DataValidade,
		Quantidade:     body.Quantidade,
		PesoPorCaixa:   body.PesoPorCaixa,
		Temperatura:    body.Temperatura,
		ShelfLife:      body.ShelfLife,
		Categoria:      body.Categoria,
		AlertasConfig:  body.AlertasConfig,
		DataEntrada:    time.Now().Format(layoutData),
		DataSaida:      nil,
		CadastradoPor:  userID,
	}

	if err := database.DB.Create(&a).Error; err != nil {
		return models.Alimento{}, fiber.NewError(fiber.StatusInternalServerError, "Erro ao criar alimento")
	}

	changes := fiber.Map{
		"alimento":          body,
		"quantidadeInicial": derefQuantidade(a.Quantidade),
		"dataEntrada":       a.DataEntrada,
	}
	if importado {
		changes = fiber.Map{"alimento": body, "importado": true}
	}

	if err := audit.WriteLog(audit.LogOptions{
		AlimentoID:     &a.ID,
		AlimentoCodigo: a.CodigoProduto,
		AlimentoNome:   a.Nome,
		Action:         models.AuditActionCreate,
		UserID:         userID,
		UserName:       userName,
		Changes:        changes,
	}); err != nil {
		log.Printf("auditoria do CREATE do alimento %d falhou: %v", a.ID, err)
	}

	return a, nil
}

// PATCH /api/alimentos/:id
func UpdateAlimentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := usuarioAtual(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body UpdateAlimentoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		var antes models.Alimento
		if err := database.DB.First(&antes, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Alimento não encontrado")
		}

		atualizado := aplicarPatch(antes, body)

		// Nota: dataSaida NÃO é limpa automaticamente quando a quantidade
		// volta a ficar acima de zero numa edição.
		if err := database.DB.Save(&atualizado).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar alimento")
		}

		if err := audit.WriteLog(audit.LogOptions{
			AlimentoID:     &atualizado.ID,
			AlimentoCodigo: atualizado.CodigoProduto,
			AlimentoNome:   atualizado.Nome,
			Action:         models.AuditActionUpdate,
			UserID:         userID,
			UserName:       userName,
			Changes:        fiber.Map{"antes": antes, "depois": body},
		}); err != nil {
			log.Printf("auditoria do UPDATE do alimento %d falhou: %v", atualizado.ID, err)
		}

		return c.JSON(atualizado)
	}
}

func aplicarPatch(a models.Alimento, body UpdateAlimentoRequest) models.Alimento {
	if body.CodigoProduto != nil {
		a.CodigoProduto = *body.CodigoProduto
	}
	if body.Nome != nil {
		a.Nome = *body.Nome
	}
	if body.Unidade != nil {
		a.Unidade = *body.Unidade
	}
	if body.Lote != nil {
		a.Lote = *body.Lote
	}
	if body.DataFabricacao != nil {
		a.DataFabricacao = *body.DataFabricacao
	}
	if body.DataValidade != nil {
		a.DataValidade = *body.DataValidade
	}
	if body.Quantidade != nil {
		a.Quantidade = body.Quantidade
	}
	if body.PesoPorCaixa != nil {
		a.PesoPorCaixa = body.PesoPorCaixa
	}
	if body.Temperatura != nil {
		a.Temperatura = *body.Temperatura
	}
	if body.ShelfLife != nil {
		a.ShelfLife = *body.ShelfLife
	}
	if body.Categoria != nil {
		a.Categoria = body.Categoria
	}
	if body.AlertasConfig != nil {
		a.AlertasConfig = *body.AlertasConfig
	}
	return a
}

// DELETE /api/alimentos/:id
func DeleteAlimentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := usuarioAtual(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var a models.Alimento
		if err := database.DB.First(&a, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Alimento não encontrado")
		}

		if err := database.DB.Delete(&models.Alimento{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao deletar alimento")
		}

		// AlimentoID fica null: o alimento não existe mais, mas o código e
		// o nome continuam no log para exibição
		if err := audit.WriteLog(audit.LogOptions{
			AlimentoID:     nil,
			AlimentoCodigo: a.CodigoProduto,
			AlimentoNome:   a.Nome,
			Action:         models.AuditActionDelete,
			UserID:         userID,
			UserName:       userName,
			Changes:        fiber.Map{"alimento": a},
		}); err != nil {
			log.Printf("auditoria do DELETE do alimento %d falhou: %v", id, err)
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// POST /api/alimentos/:id/saida
// Registra uma baixa de estoque. Quando a quantidade chega a zero, a
// data de saída é preenchida (e não volta a ser limpa depois).
func RegistrarSaidaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := usuarioAtual(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body SaidaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Quantidade <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantidade deve ser maior que zero")
		}

		var a models.Alimento
		if err := database.DB.First(&a, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Alimento não encontrado")
		}

		atual := derefQuantidade(a.Quantidade)
		if body.Quantidade > atual {
			return fiber.NewError(fiber.StatusBadRequest, "Quantidade maior que o estoque disponível")
		}

		// Snapshot ANTES de mutar o registro: num armazenamento em memória
		// ingênuo, "a" pode ser a mesma referência que vai ser atualizada
		quantidadeAntes := atual
		loteAntes := a.Lote
		cadastradoPorAntes := a.CadastradoPor
		dataEntradaAntes := a.DataEntrada

		nova := atual - body.Quantidade
		if nova < 0 {
			nova = 0
		}
		a.Quantidade = &nova
		if nova == 0 && a.DataSaida == nil {
			hoje := time.Now().Format(layoutData)
			a.DataSaida = &hoje
		}

		if err := database.DB.Save(&a).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao registrar saída")
		}

		// Quantidade originalmente cadastrada, recuperada do histórico
		var criacao *float64
		inicial := quantidadeAntes
		if logs, err := audit.LogsDoAlimento(a.ID); err == nil {
			if q, ok := QuantidadeInicialDoHistorico(logs); ok {
				criacao = &q
				inicial = q
			}
		}

		if err := audit.WriteLog(audit.LogOptions{
			AlimentoID:     &a.ID,
			AlimentoCodigo: a.CodigoProduto,
			AlimentoNome:   a.Nome,
			Action:         models.AuditActionSaida,
			UserID:         userID,
			UserName:       userName,
			Changes: saidaChanges{
				QuantidadeSaida:          body.Quantidade,
				EstoqueAntes:             quantidadeAntes,
				EstoqueDepois:            nova,
				DataSaida:                time.Now().Format(time.RFC3339),
				LoteSaida:                loteAntes,
				CadastradoPor:            cadastradoPorAntes,
				DataEntrada:              dataEntradaAntes,
				QuantidadeInicial:        inicial,
				QuantidadeInicialCriacao: criacao,
			},
		}); err != nil {
			log.Printf("auditoria da SAIDA do alimento %d falhou: %v", a.ID, err)
		}

		return c.JSON(a)
	}
}

func derefQuantidade(q *float64) float64 {
	if q == nil {
		return 0
	}
	return *q
}
