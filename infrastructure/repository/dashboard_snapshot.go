package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/strategy-hub-api/infrastructure/database/postgres"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
)

const snapshotsTable = "dashboard_snapshots"

// DashboardSnapshotRepository persiste a última versão calculada do
// dashboard de cada tenant, servida como fallback quando o Bling falha.
type DashboardSnapshotRepository interface {
	SaveSnapshot(ctx context.Context, tenantID string, insight *domain.DashboardInsight) error
	GetSnapshot(ctx context.Context, tenantID string) (*domain.DashboardSnapshot, error)
}

type dashboardSnapshotRepository struct {
	conn *postgres.Connection
}

func NewDashboardSnapshotRepository(conn *postgres.Connection) DashboardSnapshotRepository {
	return &dashboardSnapshotRepository{
		conn: conn,
	}
}

func (r *dashboardSnapshotRepository) SaveSnapshot(ctx context.Context, tenantID string, insight *domain.DashboardInsight) error {
	payload, err := json.Marshal(insight)
	if err != nil {
		return fmt.Errorf("erro ao serializar o snapshot: %w", err)
	}

	queryBuilder := squirrel.
		Insert(snapshotsTable).
		Columns("tenant_id", "payload", "generated_at").
		Values(tenantID, payload, squirrel.Expr("NOW()")).
		Suffix(`ON CONFLICT (tenant_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			generated_at = NOW()`).
		PlaceholderFormat(squirrel.Dollar)

	snapSQL, snapArgs, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, snapSQL, snapArgs...)
	return err
}

func (r *dashboardSnapshotRepository) GetSnapshot(ctx context.Context, tenantID string) (*domain.DashboardSnapshot, error) {
	var (
		payload     []byte
		generatedAt time.Time
	)

	err := r.conn.QueryRowContext(ctx,
		"SELECT payload, generated_at FROM dashboard_snapshots WHERE tenant_id = $1",
		tenantID,
	).Scan(&payload, &generatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var insight domain.DashboardInsight
	if err := json.Unmarshal(payload, &insight); err != nil {
		return nil, fmt.Errorf("erro ao desserializar o snapshot: %w", err)
	}

	return &domain.DashboardSnapshot{
		TenantID:    tenantID,
		Insight:     insight,
		GeneratedAt: generatedAt,
	}, nil
}
