package insighting

import (
	"sort"
	"time"

	"github.com/vfg2006/strategy-hub-api/internal/domain"
	"github.com/vfg2006/strategy-hub-api/pkg/utils"
)

// Limiares da curva ABC sobre a participação acumulada de receita.
const (
	abcClassACut = 0.80
	abcClassBCut = 0.95
)

// Cobertura mínima, em dias, abaixo da qual um produto entra em risco de
// ruptura. O percentual de risco é normalizado sobre coverageScale dias.
const (
	ruptureCoverageDays = 15.0
	coverageScale       = 30.0
)

const topProductsLimit = 10

// BuildDashboard calcula todos os indicadores do dashboard a partir das
// tabelas normalizadas. A função é determinística: mesma entrada, mesmo
// resultado, com ordenação estável dos agrupamentos.
func BuildDashboard(
	sales domain.SalesTable,
	products domain.ProductTable,
	stock domain.StockTable,
	period domain.Period,
	channel string,
) *domain.DashboardInsight {
	rows := filterByChannel(sales.Rows, channel)

	insight := &domain.DashboardInsight{
		Period:           period,
		Channel:          channel,
		Summary:          buildSummary(rows, products),
		RevenueByChannel: buildChannelRevenue(rows),
		TopProducts:      buildTopProducts(rows),
		DailySeries:      buildDailySeries(rows, period),
		Recurrence:       buildRecurrence(rows),
	}

	insight.Inventory = buildInventory(rows, products, stock)
	insight.InventorySummary = buildInventorySummary(insight.Inventory)

	return insight
}

func filterByChannel(rows []domain.SalesRow, channel string) []domain.SalesRow {
	if channel == "" {
		return rows
	}

	filtered := []domain.SalesRow{}
	for _, row := range rows {
		if row.Channel == channel {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func buildSummary(rows []domain.SalesRow, products domain.ProductTable) domain.SalesSummary {
	costBySKU := map[string]float64{}
	for _, product := range products.Rows {
		costBySKU[product.SKU] = product.CostPrice
	}

	summary := domain.SalesSummary{}
	orders := map[int64]bool{}

	for _, row := range rows {
		summary.TotalRevenue += row.Quantity * row.UnitValue
		// Produto sem cadastro de custo entra com custo zero na margem.
		summary.TotalMargin += (row.UnitValue - costBySKU[row.SKU]) * row.Quantity
		summary.ItemsSold += row.Quantity
		orders[row.OrderID] = true
	}

	summary.OrderCount = len(orders)
	summary.TotalRevenue = utils.RoundWithTwoDecimalPlace(summary.TotalRevenue)
	summary.TotalMargin = utils.RoundWithTwoDecimalPlace(summary.TotalMargin)
	if summary.TotalRevenue > 0 {
		summary.MarginPercent = utils.RoundWithTwoDecimalPlace(summary.TotalMargin / summary.TotalRevenue * 100)
	}

	// Ticket médio sobre pedidos distintos, não sobre linhas de item.
	if summary.OrderCount > 0 {
		summary.AverageTicket = utils.RoundWithTwoDecimalPlace(summary.TotalRevenue / float64(summary.OrderCount))
	}

	return summary
}

func buildChannelRevenue(rows []domain.SalesRow) []domain.ChannelRevenue {
	revenueByChannel := map[string]float64{}
	total := 0.0

	for _, row := range rows {
		revenue := row.Quantity * row.UnitValue
		revenueByChannel[row.Channel] += revenue
		total += revenue
	}

	channels := make([]domain.ChannelRevenue, 0, len(revenueByChannel))
	for channel, revenue := range revenueByChannel {
		share := 0.0
		if total > 0 {
			share = utils.RoundWithTwoDecimalPlace(revenue / total * 100)
		}
		channels = append(channels, domain.ChannelRevenue{
			Channel: channel,
			Revenue: utils.RoundWithTwoDecimalPlace(revenue),
			Share:   share,
		})
	}

	sort.Slice(channels, func(i, j int) bool {
		if channels[i].Revenue != channels[j].Revenue {
			return channels[i].Revenue > channels[j].Revenue
		}
		return channels[i].Channel < channels[j].Channel
	})

	return channels
}

func buildTopProducts(rows []domain.SalesRow) []domain.ProductRevenue {
	type productAgg struct {
		name     string
		quantity float64
		revenue  float64
	}

	bySKU := map[string]*productAgg{}
	for _, row := range rows {
		agg, ok := bySKU[row.SKU]
		if !ok {
			agg = &productAgg{name: row.ProductName}
			bySKU[row.SKU] = agg
		}
		agg.quantity += row.Quantity
		agg.revenue += row.Quantity * row.UnitValue
	}

	ranking := make([]domain.ProductRevenue, 0, len(bySKU))
	for sku, agg := range bySKU {
		ranking = append(ranking, domain.ProductRevenue{
			SKU:      sku,
			Name:     agg.name,
			Quantity: agg.quantity,
			Revenue:  utils.RoundWithTwoDecimalPlace(agg.revenue),
		})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Revenue != ranking[j].Revenue {
			return ranking[i].Revenue > ranking[j].Revenue
		}
		return ranking[i].SKU < ranking[j].SKU
	})

	if len(ranking) > topProductsLimit {
		ranking = ranking[:topProductsLimit]
	}

	return ranking
}

// buildDailySeries monta a série diária de faturamento cobrindo todos os
// dias do período, inclusive os sem venda, e anexa a média móvel de 7 dias.
func buildDailySeries(rows []domain.SalesRow, period domain.Period) []domain.DailyRevenue {
	revenueByDay := map[time.Time]float64{}
	for _, row := range rows {
		revenueByDay[utils.DayKey(row.Date)] += row.Quantity * row.UnitValue
	}

	series := []domain.DailyRevenue{}
	start := utils.DayKey(period.StartDate)
	end := utils.DayKey(period.EndDate)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		series = append(series, domain.DailyRevenue{
			Date:    day,
			Revenue: utils.RoundWithTwoDecimalPlace(revenueByDay[day]),
		})
	}

	// Média móvel sobre o próprio ponto e os até seis anteriores.
	window := 0.0
	for i := range series {
		window += series[i].Revenue
		if i >= 7 {
			window -= series[i-7].Revenue
		}

		size := i + 1
		if size > 7 {
			size = 7
		}
		series[i].MovingAverage = utils.RoundWithTwoDecimalPlace(window / float64(size))
	}

	return series
}

// buildRecurrence separa o faturamento entre clientes novos e recorrentes.
// O primeiro pedido de cada cliente no período é "novo"; pedidos com o mesmo
// timestamp do primeiro também contam como novos. Pedidos sem cliente
// identificado são tratados como de clientes novos.
func buildRecurrence(rows []domain.SalesRow) domain.RecurrenceInsight {
	type orderInfo struct {
		customerID int64
		date       time.Time
		revenue    float64
	}

	orders := map[int64]*orderInfo{}
	for _, row := range rows {
		info, ok := orders[row.OrderID]
		if !ok {
			info = &orderInfo{customerID: row.CustomerID, date: row.Date}
			orders[row.OrderID] = info
		}
		info.revenue += row.Quantity * row.UnitValue
	}

	firstOrder := map[int64]time.Time{}
	for _, info := range orders {
		if info.customerID == 0 {
			continue
		}
		first, ok := firstOrder[info.customerID]
		if !ok || info.date.Before(first) {
			firstOrder[info.customerID] = info.date
		}
	}

	result := domain.RecurrenceInsight{}
	returningCustomers := map[int64]bool{}
	customers := map[int64]bool{}

	for _, info := range orders {
		if info.customerID == 0 {
			result.NewRevenue += info.revenue
			continue
		}

		customers[info.customerID] = true

		if info.date.Equal(firstOrder[info.customerID]) {
			result.NewRevenue += info.revenue
		} else {
			result.ReturningRevenue += info.revenue
			returningCustomers[info.customerID] = true
		}
	}

	result.ReturningCustomers = len(returningCustomers)
	result.NewCustomers = len(customers) - len(returningCustomers)
	result.NewRevenue = utils.RoundWithTwoDecimalPlace(result.NewRevenue)
	result.ReturningRevenue = utils.RoundWithTwoDecimalPlace(result.ReturningRevenue)

	return result
}

func buildInventory(
	rows []domain.SalesRow,
	products domain.ProductTable,
	stock domain.StockTable,
) []domain.InventoryItem {
	balanceByProduct := map[int64]float64{}
	for _, row := range stock.Rows {
		balanceByProduct[row.ProductID] = row.Balance
	}

	statsBySKU := map[string]*skuStats{}
	for _, row := range rows {
		stats, ok := statsBySKU[row.SKU]
		if !ok {
			stats = &skuStats{days: map[time.Time]bool{}}
			statsBySKU[row.SKU] = stats
		}
		stats.quantity += row.Quantity
		stats.revenue += row.Quantity * row.UnitValue
		stats.days[utils.DayKey(row.Date)] = true
	}

	items := make([]domain.InventoryItem, 0, len(products.Rows))
	for _, product := range products.Rows {
		balance := balanceByProduct[product.ProductID]

		item := domain.InventoryItem{
			ProductID:  product.ProductID,
			SKU:        product.SKU,
			Name:       product.Name,
			Balance:    balance,
			UnitMargin: utils.RoundWithTwoDecimalPlace(product.Price - product.CostPrice),
		}

		var quantity float64
		if stats, ok := statsBySKU[product.SKU]; ok {
			quantity = stats.quantity

			// Média diária sobre os dias em que houve venda, não sobre o
			// período inteiro: produtos de giro esporádico não têm a média
			// diluída pelos dias sem movimento.
			if observedDays := len(stats.days); observedDays > 0 {
				item.AvgDailySales = utils.RoundWithTwoDecimalPlace(quantity / float64(observedDays))
			}
		}

		if item.AvgDailySales > 0 {
			coverage := utils.RoundWithTwoDecimalPlace(balance / item.AvgDailySales)
			item.CoverageDays = &coverage

			item.RuptureRisk = coverage < ruptureCoverageDays

			clipped := coverage
			if clipped < 0 {
				clipped = 0
			}
			if clipped > coverageScale {
				clipped = coverageScale
			}
			item.RiskPct = utils.RoundWithTwoDecimalPlace(clipped / coverageScale * 100)
		}

		if balance > 0 && quantity == 0 {
			item.DeadStock = true
			item.DeadStockValue = utils.RoundWithTwoDecimalPlace(balance * product.CostPrice)
		}

		items = append(items, item)
	}

	classifyABC(items, statsBySKU)

	sort.Slice(items, func(i, j int) bool {
		return items[i].SKU < items[j].SKU
	})

	return items
}

type skuStats struct {
	quantity float64
	revenue  float64
	days     map[time.Time]bool
}

// classifyABC atribui a classe ABC de cada produto pela participação
// acumulada de receita ANTES do próprio produto: o primeiro do ranking é
// sempre A, e um produto só cai para B ou C depois que o corte anterior já
// foi cruzado. Produtos sem receita no período ficam em C.
func classifyABC(items []domain.InventoryItem, statsBySKU map[string]*skuStats) {
	totalRevenue := 0.0
	for _, stats := range statsBySKU {
		totalRevenue += stats.revenue
	}

	if totalRevenue <= 0 {
		for i := range items {
			items[i].ABCClass = "C"
		}
		return
	}

	indexes := make([]int, len(items))
	for i := range items {
		indexes[i] = i
	}

	sort.Slice(indexes, func(a, b int) bool {
		ra := revenueOf(statsBySKU, items[indexes[a]].SKU)
		rb := revenueOf(statsBySKU, items[indexes[b]].SKU)
		if ra != rb {
			return ra > rb
		}
		return items[indexes[a]].SKU < items[indexes[b]].SKU
	})

	cumulative := 0.0
	for _, idx := range indexes {
		revenue := revenueOf(statsBySKU, items[idx].SKU)

		shareBefore := cumulative / totalRevenue
		switch {
		case revenue <= 0:
			items[idx].ABCClass = "C"
		case shareBefore < abcClassACut:
			items[idx].ABCClass = "A"
		case shareBefore < abcClassBCut:
			items[idx].ABCClass = "B"
		default:
			items[idx].ABCClass = "C"
		}

		cumulative += revenue
	}
}

func revenueOf(statsBySKU map[string]*skuStats, sku string) float64 {
	if stats, ok := statsBySKU[sku]; ok {
		return stats.revenue
	}
	return 0
}

func buildInventorySummary(items []domain.InventoryItem) domain.InventorySummary {
	summary := domain.InventorySummary{ProductCount: len(items)}

	for _, item := range items {
		if item.DeadStock {
			summary.DeadStockCount++
			summary.TotalDeadStockValue += item.DeadStockValue
		}
		if item.RuptureRisk {
			summary.RuptureRiskCount++
		}

		switch item.ABCClass {
		case "A":
			summary.ClassACount++
		case "B":
			summary.ClassBCount++
		case "C":
			summary.ClassCCount++
		}
	}

	summary.TotalDeadStockValue = utils.RoundWithTwoDecimalPlace(summary.TotalDeadStockValue)

	return summary
}
