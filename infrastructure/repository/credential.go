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

const credentialsTable = "bling_credentials"

type CredentialRepository interface {
	GetByTenantID(ctx context.Context, tenantID string) (*domain.BlingCredential, error)
	Upsert(ctx context.Context, cred *domain.BlingCredential) error
	UpdateTokens(ctx context.Context, cred *domain.BlingCredential, previousRefreshToken string) (bool, error)
	Delete(ctx context.Context, tenantID string) error
}

type credentialRepository struct {
	conn *postgres.Connection
}

func NewCredentialRepository(conn *postgres.Connection) CredentialRepository {
	return &credentialRepository{
		conn: conn,
	}
}

func (r *credentialRepository) GetByTenantID(ctx context.Context, tenantID string) (*domain.BlingCredential, error) {
	queryBuilder := squirrel.
		Select("tenant_id", "access_token", "refresh_token", "expires_at", "updated_at").
		From(credentialsTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		PlaceholderFormat(squirrel.Dollar)

	credSQL, credArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var cred domain.BlingCredential
	err = r.conn.QueryRowContext(ctx, credSQL, credArgs...).Scan(
		&cred.TenantID,
		&cred.AccessToken,
		&cred.RefreshToken,
		&cred.ExpiresAt,
		&cred.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &cred, nil
}

func (r *credentialRepository) Upsert(ctx context.Context, cred *domain.BlingCredential) error {
	queryBuilder := squirrel.
		Insert(credentialsTable).
		Columns("tenant_id", "access_token", "refresh_token", "expires_at", "updated_at").
		Values(cred.TenantID, cred.AccessToken, cred.RefreshToken, cred.ExpiresAt, squirrel.Expr("NOW()")).
		Suffix(`ON CONFLICT (tenant_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()`).
		PlaceholderFormat(squirrel.Dollar)

	credSQL, credArgs, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, credSQL, credArgs...)
	return err
}

// UpdateTokens grava o resultado de um refresh condicionado ao refresh token
// anterior. Quando outro processo já rotacionou o token, nenhuma linha é
// afetada e o retorno é false, sinalizando ao chamador que deve reler a
// credencial em vez de sobrescrever a rotação mais nova.
func (r *credentialRepository) UpdateTokens(ctx context.Context, cred *domain.BlingCredential, previousRefreshToken string) (bool, error) {
	queryBuilder := squirrel.
		Update(credentialsTable).
		Set("access_token", cred.AccessToken).
		Set("refresh_token", cred.RefreshToken).
		Set("expires_at", cred.ExpiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"tenant_id":     cred.TenantID,
			"refresh_token": previousRefreshToken,
		}).
		PlaceholderFormat(squirrel.Dollar)

	credSQL, credArgs, err := queryBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, credSQL, credArgs...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *credentialRepository) Delete(ctx context.Context, tenantID string) error {
	queryBuilder := squirrel.
		Delete(credentialsTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		PlaceholderFormat(squirrel.Dollar)

	credSQL, credArgs, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, credSQL, credArgs...)
	return err
}
