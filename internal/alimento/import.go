package alimento

import (
	"strconv"
	"strings"
	"time"
)

// Listas de nomes candidatos por campo, em ordem de prioridade. As
// planilhas chegam de fontes diferentes (exportações do ERP com colunas
// Z06_*, planilhas montadas à mão, em inglês...), então o primeiro nome
// presente e não vazio ganha.
var (
	colunasCodigoProduto = []string{
		"Código Produto", "codigoProduto", "Código", "código", "Z06_COD",
		"Codigo", "CODIGO", "SKU", "sku", "Prod_Code", "PROD_CODE",
	}
	colunasNome = []string{
		"Nome", "nome", "Descrição", "descrição", "DESCRIÇÃO", "Descricao",
		"DESCRICAO", "Z06_DESC", "Desc", "DESC", "Product Name",
		"PRODUCT_NAME", "Produto", "PRODUTO",
	}
	colunasTemperatura = []string{
		"Temperatura", "temperatura", "TEMPERATURA", "Temp", "TEMP",
		"Z06_ARMA", "Armazenamento", "ARMAZENAMENTO", "Storage", "STORAGE",
	}
	colunasLote = []string{
		"Lote", "lote", "LOTE", "Batch", "BATCH", "Lot", "LOT", "Z06_LOTE",
	}
	colunasDataFabricacao = []string{
		"Data Fabricação", "dataFabricacao", "Data Fabricacao", "Data de Fabricacao",
	}
	colunasDataValidade = []string{
		"Data Validade", "dataValidade", "Data de Validade",
		"Vencimento", "vencimento", "Expiration", "EXPIRATION",
	}
	colunasShelfLife = []string{
		"Shelf Life (dias)", "shelfLife", "Shelf Life", "SHELF_LIFE",
		"Dias Validade", "dias_validade", "Z06_PRAZO", "Prazo", "PRAZO",
		"Validade (dias)",
	}
	colunasQuantidade = []string{
		"Quantidade", "quantidade", "Qtd", "QTD", "Quantity", "QUANTITY",
		"Quantidade (kg)", "quantidade (kg)", "Z06_QTD",
	}
	colunasPesoPorCaixa = []string{
		"Peso por Caixa (kg)", "pesoPorCaixa", "Peso Caixa", "PESO_CAIXA",
		"Weight per Box", "Z06_TRCX", "Peso Unitário", "peso_unitario", "Weight",
	}
	colunasUnidade = []string{
		"Unidade", "unidade", "Unit", "UNIT", "Unidade Medida",
		"unidade_medida", "Z06_UNI",
	}
)

// primeiraColuna devolve o primeiro valor não vazio entre as colunas
// candidatas, já com espaços aparados.
func primeiraColuna(linha map[string]string, candidatas []string) string {
	for _, nome := range candidatas {
		if v, ok := linha[nome]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// converterData aceita "YYYY-MM-DD", "DD/MM/YYYY" ou um serial do Excel
// (dias desde 1900; 25569 é o epoch Unix nessa contagem) e devolve sempre
// "YYYY-MM-DD". Valores irreconhecíveis passam adiante como vieram, para
// a validação apontar o erro na linha certa.
func converterData(valor string) string {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return ""
	}

	if serial, err := strconv.ParseFloat(valor, 64); err == nil {
		t := time.Unix(int64((serial-25569)*86400), 0).UTC()
		return t.Format(layoutData)
	}

	for _, layout := range []string{layoutData, "02/01/2006", "2006-01-02T15:04:05Z07:00"} {
		if t, err := time.Parse(layout, valor); err == nil {
			return t.Format(layoutData)
		}
	}

	return valor
}

func converterNumero(valor string) float64 {
	valor = strings.TrimSpace(strings.ReplaceAll(valor, ",", "."))
	n, err := strconv.ParseFloat(valor, 64)
	if err != nil {
		return 0
	}
	return n
}

func normalizarUnidade(valor string) string {
	valor = strings.ToLower(strings.TrimSpace(valor))
	if valor == "caixa" || valor == "cx" {
		return "caixa"
	}
	return "kg"
}

// linhaParaRequest monta o request de criação a partir de uma linha da
// planilha, aplicando os mesmos padrões do fluxo manual: lote "LOTE-01",
// shelf life 365 quando ausente, fabricação de hoje quando ausente e
// validade derivada de fabricação + shelf life quando não informada.
func linhaParaRequest(linha map[string]string) CreateAlimentoRequest {
	shelfLife := int(converterNumero(primeiraColuna(linha, colunasShelfLife)))
	if shelfLife == 0 {
		shelfLife = 365
	}

	dataFabricacao := converterData(primeiraColuna(linha, colunasDataFabricacao))
	if dataFabricacao == "" {
		dataFabricacao = time.Now().Format(layoutData)
	}

	dataValidade := converterData(primeiraColuna(linha, colunasDataValidade))
	if dataValidade == "" {
		if fab, err := time.Parse(layoutData, dataFabricacao); err == nil {
			dataValidade = fab.AddDate(0, 0, shelfLife).Format(layoutData)
		}
	}

	quantidade := converterNumero(primeiraColuna(linha, colunasQuantidade))

	var pesoPorCaixa *float64
	if v := primeiraColuna(linha, colunasPesoPorCaixa); v != "" {
		peso := converterNumero(v)
		pesoPorCaixa = &peso
	}

	lote := primeiraColuna(linha, colunasLote)
	if lote == "" {
		lote = "LOTE-01"
	}

	return CreateAlimentoRequest{
		CodigoProduto:  primeiraColuna(linha, colunasCodigoProduto),
		Nome:           primeiraColuna(linha, colunasNome),
		Unidade:        normalizarUnidade(primeiraColuna(linha, colunasUnidade)),
		Lote:           lote,
		DataFabricacao: dataFabricacao,
		DataValidade:   dataValidade,
		Quantidade:     &quantidade,
		PesoPorCaixa:   pesoPorCaixa,
		Temperatura:    primeiraColuna(linha, colunasTemperatura),
		ShelfLife:      shelfLife,
	}
}
