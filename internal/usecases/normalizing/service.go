package normalizing

import (
	"github.com/sirupsen/logrus"
	blingdomain "github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/domain"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
	"github.com/vfg2006/strategy-hub-api/pkg/utils"
)

// Normalizer converte os payloads do Bling nas tabelas internas usadas pelo
// motor de indicadores. Toda tradução de formato do ERP acontece aqui: depois
// desta fronteira nenhum código conhece os nomes de campo do Bling.
type Normalizer interface {
	NormalizeSales(orders []blingdomain.Order) domain.SalesTable
	NormalizeProducts(products []blingdomain.Product) domain.ProductTable
	NormalizeStock(balances []blingdomain.StockBalance) domain.StockTable
}

type Service struct{}

func NewService() Normalizer {
	return &Service{}
}

// NormalizeSales explode cada pedido em uma linha por item, repetindo os
// metadados do pedido. Pedidos sem itens não geram linha, e pedidos com data
// ilegível são descartados com aviso.
func (s *Service) NormalizeSales(orders []blingdomain.Order) domain.SalesTable {
	table := domain.NewSalesTable()

	for i := range orders {
		order := &orders[i]

		date, ok := utils.ParseVendorDateTime(order.Data, order.Hora)
		if !ok {
			logrus.Warnf("Pedido %d descartado: data %q ilegível", order.ID, order.Data)
			continue
		}

		channel := order.Channel()

		for j := range order.Itens {
			item := &order.Itens[j]

			table.Rows = append(table.Rows, domain.SalesRow{
				OrderID:     order.ID,
				OrderNumber: order.Numero.String(),
				Date:        date,
				OrderTotal:  order.Total,
				Channel:     channel,
				CustomerID:  order.Contato.ID,
				SKU:         item.SKU(),
				ProductName: item.ProductName(),
				Quantity:    item.Quantidade,
				UnitValue:   item.Valor,
			})
		}
	}

	return table
}

func (s *Service) NormalizeProducts(products []blingdomain.Product) domain.ProductTable {
	table := domain.NewProductTable()

	for i := range products {
		product := &products[i]

		name := product.Nome
		if name == "" {
			name = "Produto"
		}

		table.Rows = append(table.Rows, domain.ProductRow{
			ProductID: product.ID,
			SKU:       product.Codigo,
			Name:      name,
			Price:     product.Preco,
			CostPrice: product.PrecoCusto,
		})
	}

	return table
}

func (s *Service) NormalizeStock(balances []blingdomain.StockBalance) domain.StockTable {
	table := domain.NewStockTable()

	for i := range balances {
		balance := &balances[i]

		table.Rows = append(table.Rows, domain.StockRow{
			ProductID: balance.Produto.ID,
			Balance:   balance.SaldoFisicoTotal,
		})
	}

	return table
}
