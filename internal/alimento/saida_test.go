package alimento

import (
	"testing"
	"time"

	"validade-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func logDe(action models.AuditAction, changes string, ts time.Time) models.AuditLog {
	return models.AuditLog{
		Action:    action,
		Changes:   changes,
		Timestamp: ts,
	}
}

func TestResolverQuantidadeInicial(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("histórico vazio cai na quantidade anterior à saída", func(t *testing.T) {
		assert.Equal(t, 50.0, ResolverQuantidadeInicial(nil, 50))
		assert.Equal(t, 50.0, ResolverQuantidadeInicial([]models.AuditLog{}, 50))
	})

	t.Run("o CREATE mais antigo com quantidade positiva vence", func(t *testing.T) {
		logs := []models.AuditLog{
			logDe(models.AuditActionCreate, `{"quantidadeInicial":100}`, base),
			logDe(models.AuditActionUpdate, `{"antes":{},"depois":{"quantidade":80}}`, base.Add(time.Hour)),
		}
		assert.Equal(t, 100.0, ResolverQuantidadeInicial(logs, 80))
	})

	t.Run("UPDATE conta quando o CREATE não tem quantidade", func(t *testing.T) {
		logs := []models.AuditLog{
			logDe(models.AuditActionCreate, `{"quantidadeInicial":0}`, base),
			logDe(models.AuditActionUpdate, `{"depois":{"quantidade":60}}`, base.Add(time.Hour)),
		}
		assert.Equal(t, 60.0, ResolverQuantidadeInicial(logs, 40))
	})

	t.Run("quantidade dentro de changes.alimento também vale", func(t *testing.T) {
		logs := []models.AuditLog{
			logDe(models.AuditActionCreate, `{"alimento":{"quantidade":25}}`, base),
		}
		assert.Equal(t, 25.0, ResolverQuantidadeInicial(logs, 10))
	})

	t.Run("ordena por timestamp mesmo se a lista chegar embaralhada", func(t *testing.T) {
		logs := []models.AuditLog{
			logDe(models.AuditActionUpdate, `{"depois":{"quantidade":80}}`, base.Add(time.Hour)),
			logDe(models.AuditActionCreate, `{"quantidadeInicial":100}`, base),
		}
		assert.Equal(t, 100.0, ResolverQuantidadeInicial(logs, 80))
	})

	t.Run("zeros e valores negativos são ignorados", func(t *testing.T) {
		logs := []models.AuditLog{
			logDe(models.AuditActionCreate, `{"quantidadeInicial":0}`, base),
			logDe(models.AuditActionUpdate, `{"depois":{"quantidade":-5}}`, base.Add(time.Hour)),
		}
		assert.Equal(t, 30.0, ResolverQuantidadeInicial(logs, 30))
	})

	t.Run("payloads malformados não derrubam a varredura", func(t *testing.T) {
		logs := []models.AuditLog{
			logDe(models.AuditActionCreate, `nem-json`, base),
			logDe(models.AuditActionSaida, `{"quantidadeSaida":10}`, base.Add(time.Hour)),
			logDe(models.AuditActionUpdate, `{"depois":{"quantidade":45}}`, base.Add(2*time.Hour)),
		}
		assert.Equal(t, 45.0, ResolverQuantidadeInicial(logs, 20))
	})
}

func TestQuantidadeInicialDoHistorico(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	q, ok := QuantidadeInicialDoHistorico([]models.AuditLog{
		logDe(models.AuditActionCreate, `{"quantidadeInicial":100}`, base),
	})
	assert.True(t, ok)
	assert.Equal(t, 100.0, q)

	_, ok = QuantidadeInicialDoHistorico(nil)
	assert.False(t, ok)
}
