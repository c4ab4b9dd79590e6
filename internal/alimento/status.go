package alimento

import (
	"log"
	"math"
	"time"

	"validade-backend/internal/models"
)

const layoutData = "2006-01-02"

// Dias até a inspeção quando a configuração não informa um valor
const diasInspecaoPadrao = 10

// Incompleto indica cadastro com campos obrigatórios faltando. Esses
// alimentos aparecem com status AGUARDANDO_CADASTRO ("não informado").
func Incompleto(a models.Alimento) bool {
	return a.DataEntrada == "" ||
		a.DataValidade == "" ||
		a.Quantidade == nil ||
		a.ShelfLife == 0 ||
		a.Temperatura == ""
}

// ComputarCampos deriva a visão computada de um alimento a partir do
// registro e da data atual. Função pura: mesmo alimento + mesmo "hoje"
// produz sempre a mesma saída.
//
// A leitura nunca pode falhar por causa de um registro malformado: datas
// que não parseiam viram "hoje" (com log), e qualquer outra falha cai no
// fallback seguro de visaoSegura.
func ComputarCampos(a models.Alimento, hoje time.Time) (computado models.AlimentoComputado) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("alimento %d: falha ao computar campos: %v", a.ID, r)
			computado = visaoSegura(a, hoje)
		}
	}()

	fabricacao := parseDataOuHoje(a.DataFabricacao, hoje, "data de fabricação", a.ID)
	validade := parseDataOuHoje(a.DataValidade, hoje, "data de validade", a.ID)

	diasInspecao := a.AlertasConfig.ContarAPartirFabricacaoDias
	if diasInspecao == 0 {
		diasInspecao = diasInspecaoPadrao
	}
	dataInspecao := fabricacao.AddDate(0, 0, diasInspecao)

	diasRestantes := diasEntre(hoje, validade)

	var status models.StatusAlimento
	switch {
	case Incompleto(a):
		status = models.StatusAguardandoCadastro
	case diasRestantes < 0:
		status = models.StatusVencido
	case diasRestantes <= 7:
		status = models.StatusVenceEmBreve
	default:
		status = models.StatusAtivo
	}

	// Alerta de 1/3 da validade: divisão real, não inteira
	diasDesdeFabricacao := diasEntre(fabricacao, hoje)
	alerta := models.AlertaNenhum
	if a.AlertasConfig.AvisoQuandoUmTercoValidade &&
		float64(diasDesdeFabricacao) >= float64(a.ShelfLife)/3 {
		alerta = models.AlertaAmarelo
	}

	return models.AlimentoComputado{
		Alimento:      a,
		DataInspecao:  dataInspecao.Format(layoutData),
		Status:        status,
		Alerta:        alerta,
		DiasRestantes: diasRestantes,
		PesoTotal:     PesoTotal(a),
	}
}

// visaoSegura: fallback quando o cálculo falha por qualquer motivo.
// O peso ainda é derivado de quantidade/unidade, que não dependem de datas.
func visaoSegura(a models.Alimento, hoje time.Time) models.AlimentoComputado {
	return models.AlimentoComputado{
		Alimento:      a,
		DataInspecao:  hoje.Format(layoutData),
		Status:        models.StatusAtivo,
		Alerta:        models.AlertaNenhum,
		DiasRestantes: 0,
		PesoTotal:     PesoTotal(a),
	}
}

// diasEntre conta os dias de "de" até "ate", arredondando para cima.
// O teto (e não o piso) é intencional: é o que o usuário vê na tela como
// contagem de dias restantes.
func diasEntre(de, ate time.Time) int {
	return int(math.Ceil(ate.Sub(de).Hours() / 24))
}

func parseDataOuHoje(valor string, hoje time.Time, campo string, id uint) time.Time {
	if valor == "" {
		return hoje
	}
	d, err := time.Parse(layoutData, valor)
	if err != nil {
		log.Printf("alimento %d: %s inválida (%q), usando a data atual", id, campo, valor)
		return hoje
	}
	return d
}

// PesoTotal converte a quantidade para kg: em "kg" é a própria quantidade,
// em "caixa" multiplica pelo peso por caixa (ausente conta como 0).
func PesoTotal(a models.Alimento) float64 {
	quantidade := 0.0
	if a.Quantidade != nil {
		quantidade = *a.Quantidade
	}
	if a.Unidade == models.UnidadeCaixa {
		peso := 0.0
		if a.PesoPorCaixa != nil {
			peso = *a.PesoPorCaixa
		}
		return quantidade * peso
	}
	return quantidade
}
