package alimento

import (
	"fmt"
	"strings"

	"validade-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type ImportAlimentosRequest struct {
	Alimentos []CreateAlimentoRequest `json:"alimentos"`
}

// POST /api/alimentos/import
// Importação em massa via JSON. Linhas com problema viram mensagens de
// erro por linha; as demais são importadas normalmente — a importação
// nunca é abortada inteira por causa de um registro ruim.
func ImportAlimentosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := usuarioAtual(c)
		if err != nil {
			return err
		}

		var body ImportAlimentosRequest
		if err := c.BodyParser(&body); err != nil || body.Alimentos == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Formato inválido")
		}

		imported, errors := importarLinhas(body.Alimentos, 0, userID, userName)
		return c.JSON(fiber.Map{"imported": imported, "errors": errors})
	}
}

// POST /api/alimentos/import-excel
// Upload de planilha .xlsx. A primeira linha é o cabeçalho; as colunas
// são resolvidas pelas listas de nomes candidatos de import.go.
func ImportAlimentosExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := usuarioAtual(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Arquivo não enviado: "+err.Error())
		}
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

		linhas, err := lerLinhasPlanilha(xls)
		if err != nil {
			return err
		}

		requests := make([]CreateAlimentoRequest, 0, len(linhas))
		for _, linha := range linhas {
			requests = append(requests, linhaParaRequest(linha))
		}

		// +1 do cabeçalho: a "linha 2" da mensagem é a linha 2 da planilha
		imported, errors := importarLinhas(requests, 1, userID, userName)
		return c.JSON(fiber.Map{"imported": imported, "errors": errors})
	}
}

// lerLinhasPlanilha lê a primeira aba e devolve cada linha de dados como
// um mapa cabeçalho→valor.
func lerLinhasPlanilha(xls *excelize.File) ([]map[string]string, error) {
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
	linhas := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		linha := make(map[string]string, len(cabecalho))
		vazia := true
		for i, nome := range cabecalho {
			valor := ""
			if i < len(row) {
				valor = row[i]
			}
			if strings.TrimSpace(valor) != "" {
				vazia = false
			}
			linha[strings.TrimSpace(nome)] = valor
		}
		if !vazia {
			linhas = append(linhas, linha)
		}
	}

	return linhas, nil
}

// importarLinhas processa cada request individualmente, acumulando erros
// por linha. offsetLinha desloca o número exibido nas mensagens (para
// planilhas, a linha 1 é o cabeçalho).
func importarLinhas(requests []CreateAlimentoRequest, offsetLinha int, userID, userName string) (int, []string) {
	imported := 0
	errors := make([]string, 0)

	for i, req := range requests {
		numLinha := i + 1 + offsetLinha
		nome := req.Nome
		if nome == "" {
			nome = "desconhecido"
		}

		if err := validation.Validar(req); err != nil {
			msg := err.Error()
			if fe, ok := err.(*fiber.Error); ok {
				msg = fe.Message
			}
			errors = append(errors, fmt.Sprintf("Linha %d - Erro ao importar %s: %s", numLinha, nome, msg))
			continue
		}

		if _, err := criarAlimento(req, userID, userName, true); err != nil {
			msg := err.Error()
			if fe, ok := err.(*fiber.Error); ok {
				msg = fe.Message
			}
			errors = append(errors, fmt.Sprintf("Linha %d - Erro ao importar %s: %s", numLinha, nome, msg))
			continue
		}

		imported++
	}

	return imported, errors
}
