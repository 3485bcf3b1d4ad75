package bling

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/blingclient"
	blingdomain "github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/domain"
	"github.com/vfg2006/strategy-hub-api/internal/config"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
	"github.com/vfg2006/strategy-hub-api/pkg/log"
)

type Integrator interface {
	FetchSales(ctx context.Context, tenantID string, period domain.Period) ([]blingdomain.Order, error)
	FetchProducts(ctx context.Context, tenantID string) ([]blingdomain.Product, error)
	FetchStockBalances(ctx context.Context, tenantID string, productIDs []int64) ([]blingdomain.StockBalance, error)
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, tenantID, code string) (*domain.BlingCredential, error)
	RefreshToken(ctx context.Context, tenantID string) (*domain.BlingCredential, error)
	TokenStatus(ctx context.Context, tenantID string) (domain.TokenState, *domain.BlingCredential, error)
}

type BlingService struct {
	cfg          *config.Config
	Client       blingclient.Client
	TokenManager *blingclient.TokenManager
}

func New(cfg *config.Config, client blingclient.Client, tokenManager *blingclient.TokenManager) Integrator {
	return &BlingService{
		cfg:          cfg,
		Client:       client,
		TokenManager: tokenManager,
	}
}

func (s *BlingService) FetchSales(ctx context.Context, tenantID string, period domain.Period) ([]blingdomain.Order, error) {
	var orders []blingdomain.Order

	err := s.withToken(ctx, tenantID, func(accessToken string) error {
		var err error
		orders, err = s.Client.GetOrders(ctx, accessToken, period.StartDate, period.EndDate)
		return err
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (s *BlingService) FetchProducts(ctx context.Context, tenantID string) ([]blingdomain.Product, error) {
	var products []blingdomain.Product

	err := s.withToken(ctx, tenantID, func(accessToken string) error {
		var err error
		products, err = s.Client.GetProducts(ctx, accessToken)
		return err
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (s *BlingService) FetchStockBalances(ctx context.Context, tenantID string, productIDs []int64) ([]blingdomain.StockBalance, error) {
	var balances []blingdomain.StockBalance

	err := s.withToken(ctx, tenantID, func(accessToken string) error {
		var err error
		balances, err = s.Client.GetStockBalances(ctx, accessToken, productIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	return balances, nil
}

func (s *BlingService) AuthorizeURL(state string) string {
	return s.TokenManager.AuthorizeURL(state)
}

func (s *BlingService) ExchangeCode(ctx context.Context, tenantID, code string) (*domain.BlingCredential, error) {
	return s.TokenManager.ExchangeCode(ctx, tenantID, code)
}

func (s *BlingService) RefreshToken(ctx context.Context, tenantID string) (*domain.BlingCredential, error) {
	return s.TokenManager.RefreshToken(ctx, tenantID)
}

func (s *BlingService) TokenStatus(ctx context.Context, tenantID string) (domain.TokenState, *domain.BlingCredential, error) {
	cred, err := s.TokenManager.EnsureValidToken(ctx, tenantID)
	if err != nil {
		if errors.Is(err, blingclient.ErrNotConnected) {
			return "", nil, err
		}
		if errors.Is(err, blingclient.ErrReauthorizationRequired) {
			return domain.TokenStateExpired, nil, nil
		}
		return "", nil, err
	}

	return cred.State(time.Now()), cred, nil
}

// withToken executa fn com um token válido do tenant. Um 401 no meio da
// consulta indica token revogado do lado do Bling antes do vencimento
// previsto: nesse caso o token é renovado à força e a consulta repetida
// uma única vez.
func (s *BlingService) withToken(ctx context.Context, tenantID string, fn func(accessToken string) error) error {
	cred, err := s.TokenManager.EnsureValidToken(ctx, tenantID)
	if err != nil {
		return err
	}

	err = fn(cred.AccessToken)
	if err == nil {
		return nil
	}

	var reqErr *blingclient.RequestError
	if !errors.As(err, &reqErr) || reqErr.StatusCode != http.StatusUnauthorized {
		return err
	}

	log.L.WithFields(log.Fields{
		"tenant_id": tenantID,
	}).Warn("Bling recusou o access token antes do vencimento previsto, renovando")

	cred, err = s.TokenManager.ForceRefresh(ctx, tenantID, cred.AccessToken)
	if err != nil {
		return err
	}

	return fn(cred.AccessToken)
}
