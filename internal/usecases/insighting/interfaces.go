package insighting

import (
	"context"

	"github.com/vfg2006/strategy-hub-api/internal/domain"
)

// Insighter monta o dashboard de indicadores de um tenant.
type Insighter interface {
	// GetDashboard busca os dados no Bling, normaliza e calcula os
	// indicadores do período. Quando o Bling está indisponível, devolve o
	// último snapshot persistido marcado como stale.
	GetDashboard(ctx context.Context, tenantID string, filters *domain.DashboardFilters) (*domain.DashboardSnapshot, error)

	// RefreshSnapshot recalcula e persiste o snapshot padrão do tenant.
	RefreshSnapshot(ctx context.Context, tenantID string) error
}
