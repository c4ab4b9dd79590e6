package modelo

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"validade-backend/internal/auth"
	"validade-backend/internal/config"
	"validade-backend/internal/database"
	"validade-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupModeloApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	cfg := &config.Config{JWTSecret: "segredo-de-teste-com-32-caracteres!!"}

	user := models.User{
		ID:           uuid.NewString(),
		Nome:         "Maria Teste",
		Email:        "maria@teste.com",
		PasswordHash: "irrelevante",
		Color:        "hsl(200 70% 40%)",
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := auth.GenerateToken(cfg.JWTSecret, &user)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"message": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		},
	})

	api := app.Group("/api", auth.JWTMiddleware(cfg))
	api.Get("/modelos-produtos", ListModelosHandler())
	api.Get("/modelos-produtos/:codigo", GetModeloHandler())
	api.Post("/modelos-produtos", CreateModeloHandler())
	api.Post("/modelos-produtos/import-excel", ImportModelosExcelHandler())

	return app, token
}

func doJSON(t *testing.T, app *fiber.App, token, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func modeloBase() fiber.Map {
	return fiber.Map{
		"codigoProduto": "P001",
		"descricao":     "Queijo Minas 500g",
		"temperatura":   "0 a 4°C",
		"shelfLife":     60,
	}
}

func TestCreateModelo(t *testing.T) {
	app, token := setupModeloApp(t)

	resp, raw := doJSON(t, app, token, "POST", "/api/modelos-produtos", modeloBase())
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var criado models.ModeloProduto
	require.NoError(t, json.Unmarshal(raw, &criado))
	assert.NotZero(t, criado.ID)
	// sem unidade informada, o padrão é kg
	assert.Equal(t, models.UnidadeKg, criado.UnidadePadrao)
	assert.NotEmpty(t, criado.CadastradoPor)
}

func TestGetModelo(t *testing.T) {
	app, token := setupModeloApp(t)

	_, _ = doJSON(t, app, token, "POST", "/api/modelos-produtos", modeloBase())

	resp, raw := doJSON(t, app, token, "GET", "/api/modelos-produtos/P001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "Queijo Minas 500g")

	resp, _ = doJSON(t, app, token, "GET", "/api/modelos-produtos/NAOEXISTE", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImportModelosJSON(t *testing.T) {
	app, token := setupModeloApp(t)

	// P001 já existe: a importação deve atualizá-lo, não duplicá-lo
	_, _ = doJSON(t, app, token, "POST", "/api/modelos-produtos", modeloBase())

	atualizado := modeloBase()
	atualizado["descricao"] = "Queijo Minas 1kg"
	novo := fiber.Map{
		"codigoProduto": "P002",
		"descricao":     "Mussarela Fatiada",
		"temperatura":   "0 a 4°C",
		"shelfLife":     30,
	}
	invalido := fiber.Map{"codigoProduto": "P003"}

	resp, raw := doJSON(t, app, token, "POST", "/api/modelos-produtos/import-excel", fiber.Map{
		"modelos": []fiber.Map{atualizado, novo, invalido},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var out struct {
		Imported int      `json:"imported"`
		Updated  int      `json:"updated"`
		Errors   []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, 1, out.Updated)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], "Linha 3 - Erro ao importar código P003")

	var count int64
	require.NoError(t, database.DB.Model(&models.ModeloProduto{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var p001 models.ModeloProduto
	require.NoError(t, database.DB.Where("codigo_produto = ?", "P001").First(&p001).Error)
	assert.Equal(t, "Queijo Minas 1kg", p001.Descricao)
}

func TestLinhaParaModelo(t *testing.T) {
	req := linhaParaModelo(map[string]string{
		"Z06_COD":    "P042",
		"Z06_DESC":   "Mussarela Fatiada",
		"Z06_ARMA":   "0 a 4°C",
		"Z06_PRAZO":  "45",
		"Z06_GTIN":   "7891234567890",
		"Z06_TRCX":   "2,5",
		"Z06_QTCX":   "12",
		"Z06_UNI":    "CX",
	})

	assert.Equal(t, "P042", req.CodigoProduto)
	assert.Equal(t, "Mussarela Fatiada", req.Descricao)
	assert.Equal(t, 45, req.ShelfLife)
	require.NotNil(t, req.Gtin)
	assert.Equal(t, "7891234567890", *req.Gtin)
	require.NotNil(t, req.PesoPorCaixa)
	assert.Equal(t, 2.5, *req.PesoPorCaixa)
	require.NotNil(t, req.QuantidadePorCaixa)
	assert.Equal(t, 12, *req.QuantidadePorCaixa)
	assert.Equal(t, models.UnidadeCaixa, req.UnidadePadrao)

	t.Run("linha vazia cai nos padrões", func(t *testing.T) {
		req := linhaParaModelo(map[string]string{})
		assert.Equal(t, models.UnidadeKg, req.UnidadePadrao)
		assert.Nil(t, req.Gtin)
		assert.Zero(t, req.ShelfLife)
	})
}
