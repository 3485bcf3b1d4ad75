package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/strategy-hub-api/infrastructure/database/postgres"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
)

const usageLogsTable = "usage_logs"

type UsageLogRepository interface {
	CreateUsageLog(ctx context.Context, entry *domain.UsageLog) error
	ListUsageLogsByTenant(ctx context.Context, tenantID string, limit int) ([]*domain.UsageLog, error)
}

type usageLogRepository struct {
	conn *postgres.Connection
}

func NewUsageLogRepository(conn *postgres.Connection) UsageLogRepository {
	return &usageLogRepository{
		conn: conn,
	}
}

func (r *usageLogRepository) CreateUsageLog(ctx context.Context, entry *domain.UsageLog) error {
	queryBuilder := squirrel.
		Insert(usageLogsTable).
		Columns("tenant_id", "username", "action", "path").
		Values(entry.TenantID, entry.Username, entry.Action, entry.Path).
		PlaceholderFormat(squirrel.Dollar)

	logSQL, logArgs, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, logSQL, logArgs...)
	return err
}

func (r *usageLogRepository) ListUsageLogsByTenant(ctx context.Context, tenantID string, limit int) ([]*domain.UsageLog, error) {
	if limit <= 0 {
		limit = 100
	}

	queryBuilder := squirrel.
		Select("id", "tenant_id", "username", "action", "path", "created_at").
		From(usageLogsTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	logSQL, logArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, logSQL, logArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.UsageLog
	for rows.Next() {
		var entry domain.UsageLog
		if err := rows.Scan(
			&entry.ID,
			&entry.TenantID,
			&entry.Username,
			&entry.Action,
			&entry.Path,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
