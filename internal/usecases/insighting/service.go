package insighting

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling"
	"github.com/vfg2006/strategy-hub-api/infrastructure/repository"
	"github.com/vfg2006/strategy-hub-api/internal/config"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
	"github.com/vfg2006/strategy-hub-api/internal/usecases/normalizing"
	"github.com/vfg2006/strategy-hub-api/pkg/log"
	"github.com/vfg2006/strategy-hub-api/pkg/utils"
)

type Service struct {
	cfg                *config.Config
	blingService       bling.Integrator
	normalizer         normalizing.Normalizer
	snapshotRepository repository.DashboardSnapshotRepository
}

// NewService cria uma nova instância do serviço de indicadores
func NewService(
	cfg *config.Config,
	blingService bling.Integrator,
	normalizer normalizing.Normalizer,
	snapshotRepository repository.DashboardSnapshotRepository,
) Insighter {
	return &Service{
		cfg:                cfg,
		blingService:       blingService,
		normalizer:         normalizer,
		snapshotRepository: snapshotRepository,
	}
}

func (s *Service) GetDashboard(ctx context.Context, tenantID string, filters *domain.DashboardFilters) (*domain.DashboardSnapshot, error) {
	period := s.resolvePeriod(filters)

	channel := ""
	if filters != nil {
		channel = filters.Channel
	}

	insight, err := s.buildInsight(ctx, tenantID, period, channel)
	if err != nil {
		// O snapshot guarda a visão completa; para um recorte por canal o
		// fallback entregaria dados de outro escopo, então o erro sobe.
		if channel != "" {
			return nil, err
		}
		return s.fallbackSnapshot(ctx, tenantID, err)
	}

	// Somente a visão completa vira snapshot: um recorte por canal não
	// serve de fallback para o dashboard inteiro.
	if channel == "" {
		if saveErr := s.snapshotRepository.SaveSnapshot(ctx, tenantID, insight); saveErr != nil {
			log.L.WithError(saveErr).WithField("tenant_id", tenantID).
				Warn("Falha ao persistir o snapshot do dashboard")
		}
	}

	return &domain.DashboardSnapshot{
		TenantID:    tenantID,
		Insight:     *insight,
		GeneratedAt: time.Now(),
	}, nil
}

func (s *Service) RefreshSnapshot(ctx context.Context, tenantID string) error {
	period := s.resolvePeriod(nil)

	insight, err := s.buildInsight(ctx, tenantID, period, "")
	if err != nil {
		return err
	}

	return s.snapshotRepository.SaveSnapshot(ctx, tenantID, insight)
}

// buildInsight percorre o caminho completo: consulta o Bling, normaliza e
// calcula os indicadores. As três consultas são sequenciais de propósito,
// para não estourar o rate limit do Bling com chamadas paralelas.
func (s *Service) buildInsight(ctx context.Context, tenantID string, period domain.Period, channel string) (*domain.DashboardInsight, error) {
	orders, err := s.blingService.FetchSales(ctx, tenantID, period)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar as vendas do tenant %s: %w", tenantID, err)
	}

	products, err := s.blingService.FetchProducts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar o catálogo do tenant %s: %w", tenantID, err)
	}

	productTable := s.normalizer.NormalizeProducts(products)

	productIDs := make([]int64, 0, len(productTable.Rows))
	for _, row := range productTable.Rows {
		productIDs = append(productIDs, row.ProductID)
	}

	balances, err := s.blingService.FetchStockBalances(ctx, tenantID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar o estoque do tenant %s: %w", tenantID, err)
	}

	salesTable := s.normalizer.NormalizeSales(orders)
	stockTable := s.normalizer.NormalizeStock(balances)

	return BuildDashboard(salesTable, productTable, stockTable, period, channel), nil
}

// fallbackSnapshot devolve o último snapshot persistido quando o caminho
// online falhou. Sem snapshot disponível, o erro original é propagado.
func (s *Service) fallbackSnapshot(ctx context.Context, tenantID string, cause error) (*domain.DashboardSnapshot, error) {
	log.L.WithError(cause).WithField("tenant_id", tenantID).
		Warn("Falha ao montar o dashboard online, tentando snapshot persistido")

	snapshot, err := s.snapshotRepository.GetSnapshot(ctx, tenantID)
	if err != nil {
		log.L.WithError(err).WithField("tenant_id", tenantID).
			Error("Falha ao buscar o snapshot de fallback")
		return nil, cause
	}
	if snapshot == nil {
		return nil, cause
	}

	snapshot.Stale = true
	return snapshot, nil
}

// resolvePeriod aplica a janela padrão de análise quando o filtro não traz
// datas: o dia corrente como fim e LookbackDays de extensão.
func (s *Service) resolvePeriod(filters *domain.DashboardFilters) domain.Period {
	end := utils.DayKey(time.Now())
	if filters != nil && filters.EndDate != nil {
		end = utils.DayKey(*filters.EndDate)
	}

	lookback := s.cfg.SnapshotSync.LookbackDays
	if lookback <= 0 {
		lookback = 90
	}

	start := end.AddDate(0, 0, -(lookback - 1))
	if filters != nil && filters.StartDate != nil {
		start = utils.DayKey(*filters.StartDate)
	}

	return domain.Period{StartDate: start, EndDate: end}
}
