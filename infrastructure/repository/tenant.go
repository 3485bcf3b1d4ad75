package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/strategy-hub-api/infrastructure/database/postgres"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
)

const tenantsTable = "tenants"

type TenantRepository interface {
	CreateTenant(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	UpdateTenant(ctx context.Context, tenant *domain.Tenant) error
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
	GetTenantByUsername(ctx context.Context, username string) (*domain.Tenant, error)
	ListTenants(ctx context.Context) ([]*domain.Tenant, error)
}

type tenantRepository struct {
	conn *postgres.Connection
}

func NewTenantRepository(conn *postgres.Connection) TenantRepository {
	return &tenantRepository{
		conn: conn,
	}
}

func (r *tenantRepository) CreateTenant(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	queryBuilder := squirrel.
		Insert(tenantsTable).
		Columns("id", "name", "username", "password_hash", "active").
		Values(tenant.ID, tenant.Name, tenant.Username, tenant.PasswordHash, tenant.Active).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	tenantSQL, tenantArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, tenantSQL, tenantArgs...).Scan(&tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return tenant, nil
}

func (r *tenantRepository) UpdateTenant(ctx context.Context, tenant *domain.Tenant) error {
	queryBuilder := squirrel.
		Update(tenantsTable).
		Set("active", tenant.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tenant.ID})

	if tenant.Name != "" {
		queryBuilder = queryBuilder.Set("name", tenant.Name)
	}

	if tenant.Username != "" {
		queryBuilder = queryBuilder.Set("username", tenant.Username)
	}

	if tenant.PasswordHash != "" {
		queryBuilder = queryBuilder.Set("password_hash", tenant.PasswordHash)
	}

	if tenant.Deleted {
		queryBuilder = queryBuilder.Set("deleted", true)
		queryBuilder = queryBuilder.Set("deleted_at", tenant.DeletedAt)
	}

	tenantSQL, tenantArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, tenantSQL, tenantArgs...)
	return err
}

func (r *tenantRepository) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.conn.QueryRowContext(ctx,
		"SELECT id, name, username, password_hash, active, deleted, deleted_at, created_at, updated_at FROM tenants WHERE deleted = false AND id = $1",
		tenantID,
	).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Username,
		&tenant.PasswordHash,
		&tenant.Active,
		&tenant.Deleted,
		&tenant.DeletedAt,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &tenant, nil
}

func (r *tenantRepository) GetTenantByUsername(ctx context.Context, username string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.conn.QueryRowContext(ctx,
		"SELECT id, name, username, password_hash, active, deleted, deleted_at, created_at, updated_at FROM tenants WHERE deleted = false AND username = $1",
		username,
	).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Username,
		&tenant.PasswordHash,
		&tenant.Active,
		&tenant.Deleted,
		&tenant.DeletedAt,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &tenant, nil
}

func (r *tenantRepository) ListTenants(ctx context.Context) ([]*domain.Tenant, error) {
	queryBuilder := squirrel.
		Select("id", "name", "username", "active", "created_at", "updated_at").
		From(tenantsTable).
		Where(squirrel.Eq{"deleted": false}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	tenantSQL, tenantArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, tenantSQL, tenantArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*domain.Tenant
	for rows.Next() {
		var tenant domain.Tenant
		if err := rows.Scan(
			&tenant.ID,
			&tenant.Name,
			&tenant.Username,
			&tenant.Active,
			&tenant.CreatedAt,
			&tenant.UpdatedAt,
		); err != nil {
			return nil, err
		}

		tenants = append(tenants, &tenant)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tenants, nil
}
