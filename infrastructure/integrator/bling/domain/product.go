package domain

// Product é um produto do catálogo como retornado por GET /produtos.
type Product struct {
	ID         int64   `json:"id"`
	Nome       string  `json:"nome"`
	Codigo     string  `json:"codigo"`
	Preco      float64 `json:"preco"`
	PrecoCusto float64 `json:"precoCusto"`
	Situacao   string  `json:"situacao"`
}
