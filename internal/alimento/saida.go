package alimento

import (
	"encoding/json"
	"sort"

	"validade-backend/internal/models"
)

// QuantidadeInicialDoHistorico procura no histórico de auditoria de um
// alimento a quantidade que foi registrada pela primeira vez no sistema,
// mesmo que tenha havido edições no meio do caminho.
//
// Percorre os logs em ordem cronológica crescente: num CREATE olha
// changes.quantidadeInicial (ou changes.alimento.quantidade); num UPDATE
// olha changes.depois.quantidade. O primeiro valor numérico POSITIVO
// encontrado vence — zeros são ignorados porque podem representar apenas
// ausência de quantidade relevante.
func QuantidadeInicialDoHistorico(logs []models.AuditLog) (float64, bool) {
	ordenados := make([]models.AuditLog, len(logs))
	copy(ordenados, logs)
	sort.SliceStable(ordenados, func(i, j int) bool {
		return ordenados[i].Timestamp.Before(ordenados[j].Timestamp)
	})

	for _, l := range ordenados {
		var changes map[string]any
		if err := json.Unmarshal([]byte(l.Changes), &changes); err != nil || changes == nil {
			continue
		}

		switch l.Action {
		case models.AuditActionCreate:
			if q, ok := quantidadePositiva(changes["quantidadeInicial"]); ok {
				return q, true
			}
			if al, ok := changes["alimento"].(map[string]any); ok {
				if q, ok := quantidadePositiva(al["quantidade"]); ok {
					return q, true
				}
			}
		case models.AuditActionUpdate:
			if depois, ok := changes["depois"].(map[string]any); ok {
				if q, ok := quantidadePositiva(depois["quantidade"]); ok {
					return q, true
				}
			}
		}
	}

	return 0, false
}

// ResolverQuantidadeInicial: quantidade "originalmente cadastrada" a
// registrar numa saída. Se o histórico não tiver nenhum valor positivo
// (ou estiver vazio), cai na quantidade capturada imediatamente ANTES da
// saída — quem chama precisa fazer esse snapshot antes de mutar o
// registro persistido.
func ResolverQuantidadeInicial(logs []models.AuditLog, quantidadeAntes float64) float64 {
	if q, ok := QuantidadeInicialDoHistorico(logs); ok {
		return q
	}
	return quantidadeAntes
}

func quantidadePositiva(v any) (float64, bool) {
	n, ok := v.(float64)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}
