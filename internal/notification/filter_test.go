package notification

import (
	"sync/atomic"
	"testing"
	"time"

	"validade-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func computado(id uint, status models.StatusAlimento, diasRestantes int) models.AlimentoComputado {
	return models.AlimentoComputado{
		Alimento: models.Alimento{
			ID:           id,
			Nome:         "Queijo Minas",
			Lote:         "LOTE-01",
			DataValidade: "2024-01-21",
		},
		Status:        status,
		Alerta:        models.AlertaNenhum,
		DiasRestantes: diasRestantes,
	}
}

func TestColetarVencido(t *testing.T) {
	alimentos := []models.AlimentoComputado{
		computado(1, models.StatusVencido, -2),
	}

	notificacoes := Coletar(alimentos, map[string]bool{})
	assert.Len(t, notificacoes, 1)
	assert.Equal(t, TipoExpired, notificacoes[0].Tipo)
	assert.Equal(t, "1-2024-01-21", notificacoes[0].ID)
	assert.Contains(t, notificacoes[0].Mensagem, "VENCIDO")

	// dispensada: some da lista
	dispensadas := map[string]bool{"1-2024-01-21": true}
	assert.Empty(t, Coletar(alimentos, dispensadas))
}

func TestColetarVenceEmBreve(t *testing.T) {
	alimentos := []models.AlimentoComputado{
		computado(2, models.StatusVenceEmBreve, 3),
	}

	notificacoes := Coletar(alimentos, map[string]bool{})
	assert.Len(t, notificacoes, 1)
	assert.Equal(t, TipoDanger, notificacoes[0].Tipo)
	assert.Contains(t, notificacoes[0].Mensagem, "vence em 3 dias")
}

func TestColetarSingular(t *testing.T) {
	alimentos := []models.AlimentoComputado{
		computado(2, models.StatusVenceEmBreve, 1),
	}

	notificacoes := Coletar(alimentos, map[string]bool{})
	assert.Len(t, notificacoes, 1)
	assert.Contains(t, notificacoes[0].Mensagem, "vence em 1 dia!")
}

func TestColetarUmTerco(t *testing.T) {
	a := computado(3, models.StatusAtivo, 12)
	a.Alerta = models.AlertaAmarelo
	a.AlertasConfig.AvisoQuandoUmTercoValidade = true

	notificacoes := Coletar([]models.AlimentoComputado{a}, map[string]bool{})
	assert.Len(t, notificacoes, 1)
	assert.Equal(t, TipoWarning, notificacoes[0].Tipo)
	assert.Contains(t, notificacoes[0].Mensagem, "1/3 da validade")

	// com o aviso desligado, o alerta amarelo sozinho não notifica
	a.AlertasConfig.AvisoQuandoUmTercoValidade = false
	assert.Empty(t, Coletar([]models.AlimentoComputado{a}, map[string]bool{}))
}

func TestColetarSemCondicao(t *testing.T) {
	// ativo, longe da validade, sem alerta: nada a notificar
	alimentos := []models.AlimentoComputado{
		computado(4, models.StatusAtivo, 30),
	}
	assert.Empty(t, Coletar(alimentos, map[string]bool{}))
}

func TestColetarMudancaDeValidadeResetaDispensa(t *testing.T) {
	a := computado(5, models.StatusVencido, -1)
	dispensadas := map[string]bool{Chave(a): true}
	assert.Empty(t, Coletar([]models.AlimentoComputado{a}, dispensadas))

	// validade editada: a chave muda e a notificação volta
	a.DataValidade = "2024-02-10"
	notificacoes := Coletar([]models.AlimentoComputado{a}, dispensadas)
	assert.Len(t, notificacoes, 1)
	assert.Equal(t, "5-2024-02-10", notificacoes[0].ID)
}

func TestColetarPreservaOrdem(t *testing.T) {
	alimentos := []models.AlimentoComputado{
		computado(10, models.StatusVencido, -1),
		computado(11, models.StatusVenceEmBreve, 2),
		computado(12, models.StatusVencido, -3),
	}

	notificacoes := Coletar(alimentos, map[string]bool{})
	assert.Len(t, notificacoes, 3)
	assert.Equal(t, uint(10), notificacoes[0].Alimento.ID)
	assert.Equal(t, uint(11), notificacoes[1].Alimento.ID)
	assert.Equal(t, uint(12), notificacoes[2].Alimento.ID)
}

func TestReabridorDisparaPeriodicamente(t *testing.T) {
	var aberturas atomic.Int32
	r := NovoReabridor(10*time.Millisecond, func() {
		aberturas.Add(1)
	})
	r.Iniciar()
	defer r.Parar()

	assert.Eventually(t, func() bool {
		return aberturas.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestReabridorPararDuasVezes(t *testing.T) {
	r := NovoReabridor(time.Hour, func() {})
	r.Iniciar()
	r.Parar()
	assert.NotPanics(t, func() { r.Parar() })
}
