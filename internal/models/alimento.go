package models

import "time"

// Unidades de medida aceitas para um lote
const (
	UnidadeKg    = "kg"
	UnidadeCaixa = "caixa"
)

type StatusAlimento string

const (
	StatusAtivo              StatusAlimento = "ATIVO"
	StatusVenceEmBreve       StatusAlimento = "VENCE EM BREVE"
	StatusVencido            StatusAlimento = "VENCIDO"
	StatusAguardandoCadastro StatusAlimento = "AGUARDANDO_CADASTRO"
)

type AlertaAlimento string

const (
	AlertaAmarelo AlertaAlimento = "AMARELO"
	AlertaNenhum  AlertaAlimento = "NENHUM"
)

// AlertasConfig: configuração de alertas embutida no alimento (jsonb)
type AlertasConfig struct {
	ContarAPartirFabricacaoDias int  `json:"contarAPartirFabricacaoDias"`
	AvisoQuandoUmTercoValidade  bool `json:"avisoQuandoUmTercoValidade"`
	PopUpNotificacoes           bool `json:"popUpNotificacoes"`
}

// Alimento: um lote de estoque de um produto, com datas e quantidade próprias.
// As datas são guardadas como texto "YYYY-MM-DD" (datas de calendário, sem hora).
type Alimento struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	CodigoProduto  string   `gorm:"size:50;index;not null" json:"codigoProduto"` // não é único: vários lotes por produto
	Nome           string   `gorm:"size:150;not null" json:"nome"`
	Unidade        string   `gorm:"size:10;not null" json:"unidade"` // "kg" ou "caixa"
	Lote           string   `gorm:"size:50;not null" json:"lote"`
	DataFabricacao string   `gorm:"size:10" json:"dataFabricacao"`
	DataValidade   string   `gorm:"size:10" json:"dataValidade"`
	Quantidade     *float64 `json:"quantidade"` // nil = quantidade não informada (cadastro incompleto)
	PesoPorCaixa   *float64 `json:"pesoPorCaixa"`
	Temperatura    string   `gorm:"size:100" json:"temperatura"`
	ShelfLife      int      `json:"shelfLife"` // dias de validade a partir da fabricação
	DataEntrada    string   `gorm:"size:10" json:"dataEntrada"` // sempre preenchida pelo servidor
	DataSaida      *string  `gorm:"size:10" json:"dataSaida"`
	Categoria      *string  `gorm:"size:100" json:"categoria"`

	AlertasConfig AlertasConfig `gorm:"serializer:json" json:"alertasConfig"`

	CadastradoPor string    `gorm:"size:36;index;not null" json:"cadastradoPor"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AlimentoComputado: visão derivada, nunca persistida. Recalculada em toda leitura.
type AlimentoComputado struct {
	Alimento
	DataInspecao  string         `json:"dataInspecao"`
	Status        StatusAlimento `json:"status"`
	Alerta        AlertaAlimento `json:"alerta"`
	DiasRestantes int            `json:"diasRestantes"` // negativo = já vencido
	PesoTotal     float64        `json:"pesoTotal"`     // sempre em kg
}
