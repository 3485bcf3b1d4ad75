package normalizing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	blingdomain "github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/domain"
)

func TestNormalizeSales(t *testing.T) {
	service := NewService()

	t.Run("Pedido com vários itens deve gerar uma linha por item", func(t *testing.T) {
		orders := []blingdomain.Order{
			{
				ID:         101,
				Numero:     json.Number("1001"),
				Data:       "2025-02-10",
				Hora:       "14:30:00",
				Total:      250.0,
				Contato:    blingdomain.Contato{ID: 55, Nome: "Maria"},
				CanalVenda: blingdomain.NameOrText{Text: "Shopee"},
				Itens: []blingdomain.OrderItem{
					{
						Codigo:     "SKU-1",
						Descricao:  "Camiseta",
						Quantidade: 2,
						Valor:      50.0,
						Produto:    blingdomain.ProductRef{ID: 1, Codigo: "SKU-1", Nome: "Camiseta Básica"},
					},
					{
						Codigo:     "SKU-2",
						Descricao:  "Calça",
						Quantidade: 1,
						Valor:      150.0,
						Produto:    blingdomain.ProductRef{ID: 2, Codigo: "SKU-2", Nome: "Calça Jeans"},
					},
				},
			},
		}

		table := service.NormalizeSales(orders)

		require.Len(t, table.Rows, 2)

		first := table.Rows[0]
		assert.Equal(t, int64(101), first.OrderID)
		assert.Equal(t, "1001", first.OrderNumber)
		assert.Equal(t, time.Date(2025, 2, 10, 14, 30, 0, 0, time.UTC), first.Date)
		assert.Equal(t, 250.0, first.OrderTotal)
		assert.Equal(t, "Shopee", first.Channel)
		assert.Equal(t, int64(55), first.CustomerID)
		assert.Equal(t, "SKU-1", first.SKU)
		assert.Equal(t, "Camiseta Básica", first.ProductName)
		assert.Equal(t, 2.0, first.Quantity)
		assert.Equal(t, 50.0, first.UnitValue)

		second := table.Rows[1]
		assert.Equal(t, "SKU-2", second.SKU)
		// Metadados do pedido se repetem em todas as linhas
		assert.Equal(t, int64(101), second.OrderID)
		assert.Equal(t, "Shopee", second.Channel)
	})

	t.Run("Pedido sem itens não gera linha", func(t *testing.T) {
		orders := []blingdomain.Order{
			{ID: 102, Numero: json.Number("1002"), Data: "2025-02-10", Total: 99.0},
		}

		table := service.NormalizeSales(orders)

		assert.Empty(t, table.Rows)
	})

	t.Run("Pedido com data ilegível é descartado", func(t *testing.T) {
		orders := []blingdomain.Order{
			{
				ID:     103,
				Numero: json.Number("1003"),
				Data:   "10/02/2025",
				Itens: []blingdomain.OrderItem{
					{Codigo: "SKU-1", Quantidade: 1, Valor: 10.0},
				},
			},
			{
				ID:     104,
				Numero: json.Number("1004"),
				Data:   "2025-02-11",
				Itens: []blingdomain.OrderItem{
					{Codigo: "SKU-1", Quantidade: 1, Valor: 10.0},
				},
			},
		}

		table := service.NormalizeSales(orders)

		require.Len(t, table.Rows, 1)
		assert.Equal(t, int64(104), table.Rows[0].OrderID)
	})

	t.Run("Pedido sem hora usa apenas a data", func(t *testing.T) {
		orders := []blingdomain.Order{
			{
				ID:     105,
				Numero: json.Number("1005"),
				Data:   "2025-02-12",
				Itens: []blingdomain.OrderItem{
					{Codigo: "SKU-1", Quantidade: 1, Valor: 10.0},
				},
			},
		}

		table := service.NormalizeSales(orders)

		require.Len(t, table.Rows, 1)
		assert.Equal(t, time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC), table.Rows[0].Date)
	})

	t.Run("Canal cai para loja e depois marketplace", func(t *testing.T) {
		orders := []blingdomain.Order{
			{
				ID: 106, Numero: json.Number("1006"), Data: "2025-02-13",
				Loja:  blingdomain.NameOrText{Descricao: "Loja Física"},
				Itens: []blingdomain.OrderItem{{Codigo: "SKU-1", Quantidade: 1, Valor: 10.0}},
			},
			{
				ID: 107, Numero: json.Number("1007"), Data: "2025-02-13",
				Marketplace: blingdomain.NameOrText{Nome: "Mercado Livre"},
				Itens:       []blingdomain.OrderItem{{Codigo: "SKU-1", Quantidade: 1, Valor: 10.0}},
			},
			{
				ID: 108, Numero: json.Number("1008"), Data: "2025-02-13",
				Itens: []blingdomain.OrderItem{{Codigo: "SKU-1", Quantidade: 1, Valor: 10.0}},
			},
		}

		table := service.NormalizeSales(orders)

		require.Len(t, table.Rows, 3)
		assert.Equal(t, "Loja Física", table.Rows[0].Channel)
		assert.Equal(t, "Mercado Livre", table.Rows[1].Channel)
		assert.Equal(t, blingdomain.ChannelUndefined, table.Rows[2].Channel)
	})

	t.Run("Nome do produto cai para a descrição do item", func(t *testing.T) {
		orders := []blingdomain.Order{
			{
				ID: 109, Numero: json.Number("1009"), Data: "2025-02-14",
				Itens: []blingdomain.OrderItem{
					{Codigo: "SKU-1", Descricao: "Descrição do Item", Quantidade: 1, Valor: 10.0},
					{Codigo: "SKU-2", Quantidade: 1, Valor: 10.0},
				},
			},
		}

		table := service.NormalizeSales(orders)

		require.Len(t, table.Rows, 2)
		assert.Equal(t, "Descrição do Item", table.Rows[0].ProductName)
		assert.Equal(t, "Produto", table.Rows[1].ProductName)
	})

	t.Run("Lista vazia devolve tabela vazia com o esquema preservado", func(t *testing.T) {
		table := service.NormalizeSales(nil)

		assert.NotNil(t, table.Rows)
		assert.Empty(t, table.Rows)
		assert.NotEmpty(t, table.Columns())
	})
}

func TestNormalizeProducts(t *testing.T) {
	service := NewService()

	t.Run("Produtos viram linhas com preço e custo", func(t *testing.T) {
		products := []blingdomain.Product{
			{ID: 1, Nome: "Camiseta Básica", Codigo: "SKU-1", Preco: 50.0, PrecoCusto: 20.0},
			{ID: 2, Nome: "", Codigo: "SKU-2", Preco: 150.0, PrecoCusto: 90.0},
		}

		table := service.NormalizeProducts(products)

		require.Len(t, table.Rows, 2)
		assert.Equal(t, "Camiseta Básica", table.Rows[0].Name)
		assert.Equal(t, 20.0, table.Rows[0].CostPrice)
		// Produto sem nome recebe o nome padrão
		assert.Equal(t, "Produto", table.Rows[1].Name)
	})

	t.Run("Lista vazia devolve tabela vazia com o esquema preservado", func(t *testing.T) {
		table := service.NormalizeProducts(nil)

		assert.NotNil(t, table.Rows)
		assert.Empty(t, table.Rows)
		assert.NotEmpty(t, table.Columns())
	})
}

func TestNormalizeStock(t *testing.T) {
	service := NewService()

	t.Run("Saldos usam o estoque físico total", func(t *testing.T) {
		balances := []blingdomain.StockBalance{
			{Produto: blingdomain.ProductRef{ID: 1}, SaldoFisicoTotal: 12, SaldoVirtualTotal: 10},
			{Produto: blingdomain.ProductRef{ID: 2}, SaldoFisicoTotal: 0, SaldoVirtualTotal: 3},
		}

		table := service.NormalizeStock(balances)

		require.Len(t, table.Rows, 2)
		assert.Equal(t, int64(1), table.Rows[0].ProductID)
		assert.Equal(t, 12.0, table.Rows[0].Balance)
		assert.Equal(t, 0.0, table.Rows[1].Balance)
	})

	t.Run("Lista vazia devolve tabela vazia com o esquema preservado", func(t *testing.T) {
		table := service.NormalizeStock(nil)

		assert.NotNil(t, table.Rows)
		assert.Empty(t, table.Rows)
		assert.NotEmpty(t, table.Columns())
	})
}
