package alimento

import (
	"testing"

	"validade-backend/internal/database"
	"validade-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestConverterData(t *testing.T) {
	tests := []struct {
		name    string
		entrada string
		saida   string
	}{
		{"já normalizada", "2024-01-15", "2024-01-15"},
		{"formato brasileiro", "15/01/2024", "2024-01-15"},
		{"serial do Excel", "45292", "2024-01-01"},
		{"ISO com hora", "2024-01-15T10:30:00Z", "2024-01-15"},
		{"vazia", "", ""},
		{"irreconhecível passa adiante", "amanhã", "amanhã"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.saida, converterData(tt.entrada))
		})
	}
}

func TestConverterNumero(t *testing.T) {
	assert.Equal(t, 12.5, converterNumero("12.5"))
	assert.Equal(t, 12.5, converterNumero("12,5"))
	assert.Equal(t, 12.5, converterNumero("  12,5  "))
	assert.Equal(t, 0.0, converterNumero("abc"))
}

func TestNormalizarUnidade(t *testing.T) {
	assert.Equal(t, "caixa", normalizarUnidade("Caixa"))
	assert.Equal(t, "caixa", normalizarUnidade("CX"))
	assert.Equal(t, "kg", normalizarUnidade("kg"))
	assert.Equal(t, "kg", normalizarUnidade(""))
	assert.Equal(t, "kg", normalizarUnidade("unidade qualquer"))
}

func TestLinhaParaRequest(t *testing.T) {
	t.Run("colunas do ERP", func(t *testing.T) {
		req := linhaParaRequest(map[string]string{
			"Z06_COD":           "P042",
			"Z06_DESC":          "Mussarela Fatiada",
			"Z06_ARMA":          "0 a 4°C",
			"Z06_LOTE":          "L-9",
			"Z06_PRAZO":         "20",
			"Z06_QTD":           "12,5",
			"Z06_TRCX":          "2,5",
			"Z06_UNI":           "CX",
			"Data Fabricação":   "01/01/2024",
			"Data Validade":     "21/01/2024",
		})

		assert.Equal(t, "P042", req.CodigoProduto)
		assert.Equal(t, "Mussarela Fatiada", req.Nome)
		assert.Equal(t, "0 a 4°C", req.Temperatura)
		assert.Equal(t, "L-9", req.Lote)
		assert.Equal(t, 20, req.ShelfLife)
		require.NotNil(t, req.Quantidade)
		assert.Equal(t, 12.5, *req.Quantidade)
		require.NotNil(t, req.PesoPorCaixa)
		assert.Equal(t, 2.5, *req.PesoPorCaixa)
		assert.Equal(t, "caixa", req.Unidade)
		assert.Equal(t, "2024-01-01", req.DataFabricacao)
		assert.Equal(t, "2024-01-21", req.DataValidade)
	})

	t.Run("a coluna de maior prioridade ganha", func(t *testing.T) {
		req := linhaParaRequest(map[string]string{
			"Código Produto": "P001",
			"Z06_COD":        "P999",
		})
		assert.Equal(t, "P001", req.CodigoProduto)
	})

	t.Run("padrões para colunas ausentes", func(t *testing.T) {
		req := linhaParaRequest(map[string]string{
			"Nome":            "Queijo",
			"Data Fabricação": "2024-01-01",
		})

		assert.Equal(t, "LOTE-01", req.Lote)
		assert.Equal(t, 365, req.ShelfLife)
		assert.Equal(t, "kg", req.Unidade)
		// validade derivada: fabricação + shelf life
		assert.Equal(t, "2024-12-31", req.DataValidade)
		assert.Nil(t, req.PesoPorCaixa)
	})
}

func TestImportarLinhas(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	q := 10.0
	valida := CreateAlimentoRequest{
		CodigoProduto:  "P001",
		Nome:           "Queijo Minas",
		Unidade:        "kg",
		DataFabricacao: "2024-01-01",
		DataValidade:   "2024-12-31",
		Quantidade:     &q,
		Temperatura:    "0 a 4°C",
		ShelfLife:      365,
	}
	invalida := valida
	invalida.Nome = "Sem Temperatura"
	invalida.Temperatura = ""

	imported, errors := importarLinhas([]CreateAlimentoRequest{valida, invalida}, 1, "u1", "Maria")

	assert.Equal(t, 1, imported)
	require.Len(t, errors, 1)
	// offset 1: a primeira linha de dados é a linha 2 da planilha
	assert.Contains(t, errors[0], "Linha 3 - Erro ao importar Sem Temperatura")

	// a linha boa entrou e ficou marcada como importada na auditoria
	var count int64
	require.NoError(t, db.Model(&models.Alimento{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Changes, `"importado":true`)
}
