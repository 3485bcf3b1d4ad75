package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameOrTextUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{
			name:     "Canal como string simples",
			payload:  `{"id":1,"numero":"10","data":"2025-01-01","canalVenda":"Shopee"}`,
			expected: "Shopee",
		},
		{
			name:     "Canal como objeto com descricao",
			payload:  `{"id":1,"numero":"10","data":"2025-01-01","loja":{"id":5,"descricao":"Loja Matriz"}}`,
			expected: "Loja Matriz",
		},
		{
			name:     "Canal como objeto com nome",
			payload:  `{"id":1,"numero":"10","data":"2025-01-01","marketplace":{"id":7,"nome":"Amazon"}}`,
			expected: "Amazon",
		},
		{
			name:     "Canal nulo cai para Indefinido",
			payload:  `{"id":1,"numero":"10","data":"2025-01-01","canalVenda":null}`,
			expected: ChannelUndefined,
		},
		{
			name:     "Sem nenhum canal cai para Indefinido",
			payload:  `{"id":1,"numero":"10","data":"2025-01-01"}`,
			expected: ChannelUndefined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var order Order
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &order))
			assert.Equal(t, tt.expected, order.Channel())
		})
	}
}

func TestOrderItemFallbacks(t *testing.T) {
	t.Run("SKU prefere o código do cadastro do produto", func(t *testing.T) {
		item := OrderItem{
			Codigo:  "ITEM-1",
			Produto: ProductRef{Codigo: "PROD-1"},
		}
		assert.Equal(t, "PROD-1", item.SKU())
	})

	t.Run("SKU cai para o código do item", func(t *testing.T) {
		item := OrderItem{Codigo: "ITEM-1"}
		assert.Equal(t, "ITEM-1", item.SKU())
	})

	t.Run("Nome do produto segue a ordem nome, descricao do produto, descricao do item", func(t *testing.T) {
		item := OrderItem{
			Descricao: "Descrição do item",
			Produto:   ProductRef{Nome: "Nome do produto", Descricao: "Descrição do produto"},
		}
		assert.Equal(t, "Nome do produto", item.ProductName())

		item.Produto.Nome = ""
		assert.Equal(t, "Descrição do produto", item.ProductName())

		item.Produto.Descricao = ""
		assert.Equal(t, "Descrição do item", item.ProductName())

		item.Descricao = ""
		assert.Equal(t, "Produto", item.ProductName())
	})
}
