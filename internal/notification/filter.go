package notification

import (
	"fmt"

	"validade-backend/internal/models"
)

// Tipos de notificação, do mais ao menos grave
const (
	TipoExpired = "expired" // já vencido
	TipoDanger  = "danger"  // vence em até 7 dias
	TipoWarning = "warning" // passou de 1/3 da validade
)

type Notificacao struct {
	ID       string                   `json:"id"`
	Tipo     string                   `json:"tipo"`
	Mensagem string                   `json:"mensagem"`
	Alimento models.AlimentoComputado `json:"alimento"`
}

// Chave identifica a notificação de um alimento. Inclui a data de
// validade de propósito: se a validade for editada, a chave muda e a
// notificação dispensada volta a aparecer.
func Chave(a models.AlimentoComputado) string {
	return fmt.Sprintf("%d-%s", a.ID, a.DataValidade)
}

// Coletar decide, por alimento, se há um alerta não lido a exibir. No
// máximo uma notificação por alimento; o conjunto de dispensadas é
// estado do cliente e chega como parâmetro. A ordem de entrada é
// preservada.
func Coletar(alimentos []models.AlimentoComputado, dispensadas map[string]bool) []Notificacao {
	notificacoes := make([]Notificacao, 0)

	for _, a := range alimentos {
		chave := Chave(a)
		if dispensadas[chave] {
			continue
		}

		switch {
		case a.Status == models.StatusVencido:
			notificacoes = append(notificacoes, Notificacao{
				ID:   chave,
				Tipo: TipoExpired,
				Mensagem: fmt.Sprintf(
					"%s (Lote %s) está VENCIDO! Por favor, dar baixa no estoque.",
					a.Nome, a.Lote,
				),
				Alimento: a,
			})

		case a.DiasRestantes > 0 && a.DiasRestantes <= 7:
			notificacoes = append(notificacoes, Notificacao{
				ID:   chave,
				Tipo: TipoDanger,
				Mensagem: fmt.Sprintf(
					"%s (Lote %s) vence em %d %s!",
					a.Nome, a.Lote, a.DiasRestantes, plural(a.DiasRestantes, "dia", "dias"),
				),
				Alimento: a,
			})

		case a.Alerta == models.AlertaAmarelo && a.DiasRestantes > 7 &&
			a.AlertasConfig.AvisoQuandoUmTercoValidade:
			notificacoes = append(notificacoes, Notificacao{
				ID:   chave,
				Tipo: TipoWarning,
				Mensagem: fmt.Sprintf(
					"%s (Lote %s) atingiu 1/3 da validade (%d dias restantes).",
					a.Nome, a.Lote, a.DiasRestantes,
				),
				Alimento: a,
			})
		}
	}

	return notificacoes
}

func plural(n int, singular, maisDeUm string) string {
	if n == 1 {
		return singular
	}
	return maisDeUm
}
