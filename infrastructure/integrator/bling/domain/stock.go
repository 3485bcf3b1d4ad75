package domain

// StockBalance é o saldo consolidado de um produto em GET /estoques/saldos.
type StockBalance struct {
	Produto           ProductRef `json:"produto"`
	SaldoFisicoTotal  float64    `json:"saldoFisicoTotal"`
	SaldoVirtualTotal float64    `json:"saldoVirtualTotal"`
}
