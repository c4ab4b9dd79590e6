package models

import "time"

// ModeloProduto: template de catálogo, chaveado pelo código único do produto.
// Usado só para pré-preencher o cadastro de alimentos; não participa do
// cálculo de status.
type ModeloProduto struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	CodigoProduto      string   `gorm:"size:50;uniqueIndex;not null" json:"codigoProduto"` // Z06_COD
	Descricao          string   `gorm:"size:150;not null" json:"descricao"`                // Z06_DESC
	Temperatura        string   `gorm:"size:100;not null" json:"temperatura"`              // Z06_ARMA
	ShelfLife          int      `gorm:"not null" json:"shelfLife"`                         // Z06_PRAZO
	Gtin               *string  `gorm:"size:30" json:"gtin"`                               // Z06_GTIN
	PesoEmbalagem      *float64 `json:"pesoEmbalagem"`                                     // Z06_TREMB
	PesoPorCaixa       *float64 `json:"pesoPorCaixa"`                                      // Z06_TRCX
	Empresa            *string  `gorm:"size:100" json:"empresa"`                           // Z06_EMPRE
	PesoLiquido        *float64 `json:"pesoLiquido"`                                       // Z06_PESOLI
	TipoPeso           *string  `gorm:"size:5" json:"tipoPeso"`                            // Z06_TPPESO (V ou F)
	QuantidadePorCaixa *int     `json:"quantidadePorCaixa"`                                // Z06_QTCX
	UnidadePadrao      string   `gorm:"size:10;not null;default:kg" json:"unidadePadrao"`  // "kg" ou "caixa"

	CadastradoPor   string    `gorm:"size:36;not null" json:"cadastradoPor"`
	CreatedAt       time.Time `json:"createdAt"`
	DataAtualizacao time.Time `gorm:"autoUpdateTime" json:"dataAtualizacao"`
}
