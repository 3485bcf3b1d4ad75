package domain

import "time"

// SalesRow é uma linha normalizada de item de venda: cada item de pedido
// vira uma linha, carregando os metadados do pedido a que pertence.
type SalesRow struct {
	OrderID     int64     `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Date        time.Time `json:"date"`
	OrderTotal  float64   `json:"order_total"`
	Channel     string    `json:"channel"`
	CustomerID  int64     `json:"customer_id"`
	SKU         string    `json:"sku"`
	ProductName string    `json:"product_name"`
	Quantity    float64   `json:"quantity"`
	UnitValue   float64   `json:"unit_value"`
}

// ProductRow é uma linha normalizada do catálogo de produtos.
type ProductRow struct {
	ProductID int64   `json:"product_id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	CostPrice float64 `json:"cost_price"`
}

// StockRow é uma linha normalizada de saldo de estoque por produto.
type StockRow struct {
	ProductID int64   `json:"product_id"`
	Balance   float64 `json:"balance"`
}

// As tabelas abaixo embrulham as linhas normalizadas. Elas existem para que
// uma resposta vazia do ERP ainda carregue o esquema completo: Rows nunca é
// nil e Columns devolve as colunas mesmo sem nenhuma linha.

type SalesTable struct {
	Rows []SalesRow `json:"rows"`
}

func NewSalesTable() SalesTable {
	return SalesTable{Rows: []SalesRow{}}
}

func (SalesTable) Columns() []string {
	return []string{
		"order_id", "order_number", "date", "order_total", "channel",
		"customer_id", "sku", "product_name", "quantity", "unit_value",
	}
}

type ProductTable struct {
	Rows []ProductRow `json:"rows"`
}

func NewProductTable() ProductTable {
	return ProductTable{Rows: []ProductRow{}}
}

func (ProductTable) Columns() []string {
	return []string{"product_id", "sku", "name", "price", "cost_price"}
}

type StockTable struct {
	Rows []StockRow `json:"rows"`
}

func NewStockTable() StockTable {
	return StockTable{Rows: []StockRow{}}
}

func (StockTable) Columns() []string {
	return []string{"product_id", "balance"}
}
