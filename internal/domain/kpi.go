package domain

import "time"

// Período analisado, com as datas normalizadas para o fuso local.
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// DashboardFilters são os filtros aceitos pela consulta de dashboard.
// Datas ausentes caem na janela padrão de análise.
type DashboardFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Channel   string
}

type SalesSummary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalMargin   float64 `json:"total_margin"`
	MarginPercent float64 `json:"margin_percent"`
	OrderCount    int     `json:"order_count"`
	ItemsSold     float64 `json:"items_sold"`
	AverageTicket float64 `json:"average_ticket"`
}

type ChannelRevenue struct {
	Channel string  `json:"channel"`
	Revenue float64 `json:"revenue"`
	Share   float64 `json:"share"`
}

type ProductRevenue struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// DailyRevenue é um ponto da série diária de faturamento. MovingAverage é a
// média móvel de 7 dias calculada sobre os pontos anteriores da própria série.
type DailyRevenue struct {
	Date          time.Time `json:"date"`
	Revenue       float64   `json:"revenue"`
	MovingAverage float64   `json:"moving_average"`
}

// RecurrenceInsight separa o faturamento entre clientes novos e recorrentes.
// Um cliente é novo quando o pedido analisado é o seu primeiro no período.
type RecurrenceInsight struct {
	NewCustomers       int     `json:"new_customers"`
	ReturningCustomers int     `json:"returning_customers"`
	NewRevenue         float64 `json:"new_revenue"`
	ReturningRevenue   float64 `json:"returning_revenue"`
}

// InventoryItem reúne os indicadores de estoque de um produto.
// CoverageDays é nil quando não há histórico de venda que permita estimar
// a cobertura.
type InventoryItem struct {
	ProductID      int64    `json:"product_id"`
	SKU            string   `json:"sku"`
	Name           string   `json:"name"`
	Balance        float64  `json:"balance"`
	AvgDailySales  float64  `json:"avg_daily_sales"`
	CoverageDays   *float64 `json:"coverage_days"`
	ABCClass       string   `json:"abc_class"`
	RuptureRisk    bool     `json:"rupture_risk"`
	RiskPct        float64  `json:"risk_pct"`
	DeadStock      bool     `json:"dead_stock"`
	DeadStockValue float64  `json:"dead_stock_value"`
	UnitMargin     float64  `json:"unit_margin"`
}

type InventorySummary struct {
	ProductCount        int     `json:"product_count"`
	DeadStockCount      int     `json:"dead_stock_count"`
	TotalDeadStockValue float64 `json:"total_dead_stock_value"`
	RuptureRiskCount    int     `json:"rupture_risk_count"`
	ClassACount         int     `json:"class_a_count"`
	ClassBCount         int     `json:"class_b_count"`
	ClassCCount         int     `json:"class_c_count"`
}

// DashboardInsight é o payload completo servido ao dashboard de um tenant.
type DashboardInsight struct {
	Period           Period            `json:"period"`
	Channel          string            `json:"channel,omitempty"`
	Summary          SalesSummary      `json:"summary"`
	RevenueByChannel []ChannelRevenue  `json:"revenue_by_channel"`
	TopProducts      []ProductRevenue  `json:"top_products"`
	DailySeries      []DailyRevenue    `json:"daily_series"`
	Recurrence       RecurrenceInsight `json:"recurrence"`
	Inventory        []InventoryItem   `json:"inventory"`
	InventorySummary InventorySummary  `json:"inventory_summary"`
}

// DashboardSnapshot é a última versão persistida do dashboard de um tenant,
// usada como fallback quando o Bling está indisponível.
type DashboardSnapshot struct {
	TenantID    string           `json:"tenant_id"`
	Insight     DashboardInsight `json:"insight"`
	GeneratedAt time.Time        `json:"generated_at"`
	Stale       bool             `json:"stale"`
}
