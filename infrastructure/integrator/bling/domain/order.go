package domain

import (
	"encoding/json"
	"strings"
)

// Order é um pedido de venda como retornado por GET /pedidos/vendas.
// Os campos seguem o contrato da API v3 do Bling.
type Order struct {
	ID          int64       `json:"id"`
	Numero      json.Number `json:"numero"`
	Data        string      `json:"data"`
	Hora        string      `json:"hora"`
	Total       float64     `json:"total"`
	Contato     Contato     `json:"contato"`
	CanalVenda  NameOrText  `json:"canalVenda"`
	Loja        NameOrText  `json:"loja"`
	Marketplace NameOrText  `json:"marketplace"`
	Itens       []OrderItem `json:"itens"`
}

type Contato struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

type OrderItem struct {
	Codigo     string     `json:"codigo"`
	Descricao  string     `json:"descricao"`
	Quantidade float64    `json:"quantidade"`
	Valor      float64    `json:"valor"`
	Produto    ProductRef `json:"produto"`
}

type ProductRef struct {
	ID        int64  `json:"id"`
	Codigo    string `json:"codigo"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
}

// NameOrText aceita os dois formatos que o Bling usa para canal e loja:
// uma string simples ("Shopee") ou um objeto com descricao/nome.
type NameOrText struct {
	Text      string
	Descricao string
	Nome      string
}

func (n *NameOrText) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		return json.Unmarshal(data, &n.Text)
	}

	var obj struct {
		Descricao string `json:"descricao"`
		Nome      string `json:"nome"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	n.Descricao = obj.Descricao
	n.Nome = obj.Nome
	return nil
}

// Value devolve o primeiro valor não vazio entre texto, descricao e nome.
func (n NameOrText) Value() string {
	if n.Text != "" {
		return n.Text
	}
	if n.Descricao != "" {
		return n.Descricao
	}
	return n.Nome
}

// ChannelUndefined é o canal atribuído quando o pedido não traz nenhuma
// indicação de origem.
const ChannelUndefined = "Indefinido"

// Channel resolve o canal de venda do pedido na ordem de prioridade
// canalVenda, loja, marketplace.
func (o *Order) Channel() string {
	if v := o.CanalVenda.Value(); v != "" {
		return v
	}
	if v := o.Loja.Value(); v != "" {
		return v
	}
	if v := o.Marketplace.Value(); v != "" {
		return v
	}
	return ChannelUndefined
}

// ProductName resolve o nome do produto de um item, caindo para a descrição
// do próprio item quando o cadastro do produto não traz nome.
func (i *OrderItem) ProductName() string {
	if i.Produto.Nome != "" {
		return i.Produto.Nome
	}
	if i.Produto.Descricao != "" {
		return i.Produto.Descricao
	}
	if i.Descricao != "" {
		return i.Descricao
	}
	return "Produto"
}

// SKU devolve o código do item, preferindo o código do cadastro do produto.
func (i *OrderItem) SKU() string {
	if i.Produto.Codigo != "" {
		return i.Produto.Codigo
	}
	return i.Codigo
}
