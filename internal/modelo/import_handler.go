package modelo

import (
	"fmt"
	"strconv"
	"strings"

	"validade-backend/internal/auth"
	"validade-backend/internal/database"
	"validade-backend/internal/models"
	"validade-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// Colunas da planilha de modelos (exportação Z06 do ERP), em ordem de
// prioridade por campo.
var (
	colunasCodigo        = []string{"Z06_COD", "Código Produto", "codigoProduto", "Código", "Codigo", "CODIGO", "SKU"}
	colunasDescricao     = []string{"Z06_DESC", "Descrição", "Descricao", "DESCRICAO", "descricao", "Nome", "nome"}
	colunasTemperatura   = []string{"Z06_ARMA", "Temperatura", "temperatura", "Armazenamento", "Storage"}
	colunasShelfLife     = []string{"Z06_PRAZO", "Shelf Life (dias)", "Shelf Life", "shelfLife", "Prazo", "PRAZO"}
	colunasGtin          = []string{"Z06_GTIN", "GTIN", "gtin", "Código de Barras", "EAN"}
	colunasPesoEmbalagem = []string{"Z06_TREMB", "Peso Embalagem", "pesoEmbalagem"}
	colunasPesoCaixa     = []string{"Z06_TRCX", "Peso por Caixa (kg)", "pesoPorCaixa", "Peso Caixa"}
	colunasEmpresa       = []string{"Z06_EMPRE", "Empresa", "empresa"}
	colunasPesoLiquido   = []string{"Z06_PESOLI", "Peso Líquido", "pesoLiquido"}
	colunasTipoPeso      = []string{"Z06_TPPESO", "Tipo Peso", "tipoPeso"}
	colunasQtdPorCaixa   = []string{"Z06_QTCX", "Quantidade por Caixa", "quantidadePorCaixa"}
	colunasUnidadePadrao = []string{"Z06_UNI", "Unidade Padrão", "unidadePadrao", "Unidade", "unidade"}
)

type ImportModelosRequest struct {
	Modelos []CreateModeloRequest `json:"modelos"`
}

// POST /api/modelos-produtos/import-excel
// Aceita tanto JSON ({"modelos": [...]}) quanto upload multipart de uma
// .xlsx. Modelos cujo código já existe são atualizados (upsert por
// codigoProduto); os demais são criados.
func ImportModelosExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(auth.CtxUserIDKey)
		userID, ok := userIDVal.(string)
		if !ok || userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Não autenticado")
		}

		var requests []CreateModeloRequest
		offsetLinha := 0

		if fileHeader, err := c.FormFile("file"); err == nil {
			if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
				return fiber.NewError(fiber.StatusBadRequest, "Apenas arquivos .xlsx são aceitos")
			}
			file, err := fileHeader.Open()
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível abrir o arquivo: "+err.Error())
			}
			defer file.Close()

			xls, err := excelize.OpenReader(file)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Não foi possível ler a planilha: "+err.Error())
			}
			defer xls.Close()

			requests, err = lerModelosPlanilha(xls)
			if err != nil {
				return err
			}
			offsetLinha = 1
		} else {
			var body ImportModelosRequest
			if err := c.BodyParser(&body); err != nil || body.Modelos == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Formato inválido")
			}
			requests = body.Modelos
		}

		imported := 0
		updated := 0
		errors := make([]string, 0)

		for i, req := range requests {
			numLinha := i + 1 + offsetLinha
			codigo := req.CodigoProduto
			if codigo == "" {
				codigo = "desconhecido"
			}

			if err := validation.Validar(req); err != nil {
				msg := err.Error()
				if fe, ok := err.(*fiber.Error); ok {
					msg = fe.Message
				}
				errors = append(errors, fmt.Sprintf("Linha %d - Erro ao importar código %s: %s", numLinha, codigo, msg))
				continue
			}

			var existente models.ModeloProduto
			err := database.DB.Where("codigo_produto = ?", req.CodigoProduto).First(&existente).Error
			if err == nil {
				atualizado := modeloDoRequest(req, existente.CadastradoPor)
				atualizado.ID = existente.ID
				atualizado.CreatedAt = existente.CreatedAt
				if err := database.DB.Save(&atualizado).Error; err != nil {
					errors = append(errors, fmt.Sprintf("Linha %d - Erro ao importar código %s: %s", numLinha, codigo, err.Error()))
					continue
				}
				updated++
			} else {
				novo := modeloDoRequest(req, userID)
				if err := database.DB.Create(&novo).Error; err != nil {
					errors = append(errors, fmt.Sprintf("Linha %d - Erro ao importar código %s: %s", numLinha, codigo, err.Error()))
					continue
				}
				imported++
			}
		}

		return c.JSON(fiber.Map{"imported": imported, "updated": updated, "errors": errors})
	}
}

func lerModelosPlanilha(xls *excelize.File) ([]CreateModeloRequest, error) {
	sheets := xls.GetSheetList()
	if len(sheets) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Planilha vazia")
	}

	rows, err := xls.GetRows(sheets[0])
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Não foi possível ler as linhas: "+err.Error())
	}
	if len(rows) < 2 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Planilha sem linhas de dados")
	}

	cabecalho := rows[0]
	requests := make([]CreateModeloRequest, 0, len(rows)-1)
	for _, row := range rows[1:] {
		linha := make(map[string]string, len(cabecalho))
		for i, nome := range cabecalho {
			valor := ""
			if i < len(row) {
				valor = row[i]
			}
			linha[strings.TrimSpace(nome)] = valor
		}
		requests = append(requests, linhaParaModelo(linha))
	}

	return requests, nil
}

func linhaParaModelo(linha map[string]string) CreateModeloRequest {
	req := CreateModeloRequest{
		CodigoProduto: primeiraColuna(linha, colunasCodigo),
		Descricao:     primeiraColuna(linha, colunasDescricao),
		Temperatura:   primeiraColuna(linha, colunasTemperatura),
		ShelfLife:     int(numero(primeiraColuna(linha, colunasShelfLife))),
	}

	if v := primeiraColuna(linha, colunasGtin); v != "" {
		req.Gtin = &v
	}
	if v := primeiraColuna(linha, colunasPesoEmbalagem); v != "" {
		n := numero(v)
		req.PesoEmbalagem = &n
	}
	if v := primeiraColuna(linha, colunasPesoCaixa); v != "" {
		n := numero(v)
		req.PesoPorCaixa = &n
	}
	if v := primeiraColuna(linha, colunasEmpresa); v != "" {
		req.Empresa = &v
	}
	if v := primeiraColuna(linha, colunasPesoLiquido); v != "" {
		n := numero(v)
		req.PesoLiquido = &n
	}
	if v := primeiraColuna(linha, colunasTipoPeso); v != "" {
		req.TipoPeso = &v
	}
	if v := primeiraColuna(linha, colunasQtdPorCaixa); v != "" {
		n := int(numero(v))
		req.QuantidadePorCaixa = &n
	}

	unidade := strings.ToLower(primeiraColuna(linha, colunasUnidadePadrao))
	if unidade == "caixa" || unidade == "cx" {
		req.UnidadePadrao = models.UnidadeCaixa
	} else {
		req.UnidadePadrao = models.UnidadeKg
	}

	return req
}

func primeiraColuna(linha map[string]string, candidatas []string) string {
	for _, nome := range candidatas {
		if v, ok := linha[nome]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func numero(valor string) float64 {
	valor = strings.TrimSpace(strings.ReplaceAll(valor, ",", "."))
	n, err := strconv.ParseFloat(valor, 64)
	if err != nil {
		return 0
	}
	return n
}
