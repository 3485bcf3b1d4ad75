package blingclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	blingdomain "github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/domain"
	"github.com/vfg2006/strategy-hub-api/infrastructure/repository"
	"github.com/vfg2006/strategy-hub-api/internal/config"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
)

// TokenSafetyMargin é descontado do expires_in informado pelo Bling no
// momento da gravação, para que o token seja renovado antes do vencimento
// real e nenhuma requisição parta com um token no limite.
const TokenSafetyMargin = 60 * time.Second

var (
	// ErrNotConnected indica que o tenant ainda não autorizou o aplicativo
	// no Bling e não possui credencial armazenada.
	ErrNotConnected = errors.New("tenant não conectado ao Bling")

	// ErrReauthorizationRequired indica que o refresh token foi rejeitado e
	// o tenant precisa refazer o fluxo de autorização.
	ErrReauthorizationRequired = errors.New("refresh token rejeitado pelo Bling, reautorização necessária")
)

// TokenManager gerencia o ciclo de vida dos tokens OAuth2 de cada tenant
// junto ao Bling. O refresh é serializado por tenant: duas requisições
// simultâneas do mesmo tenant não disparam dois refreshes concorrentes.
type TokenManager struct {
	cfg         *config.Config
	httpClient  *http.Client
	credentials repository.CredentialRepository

	mu          sync.Mutex
	tenantLocks map[string]*sync.Mutex
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config, credentials repository.CredentialRepository) *TokenManager {
	return &TokenManager{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Bling.RequestTimeout,
		},
		credentials: credentials,
		tenantLocks: make(map[string]*sync.Mutex),
	}
}

func (tm *TokenManager) lockFor(tenantID string) *sync.Mutex {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	lock, ok := tm.tenantLocks[tenantID]
	if !ok {
		lock = &sync.Mutex{}
		tm.tenantLocks[tenantID] = lock
	}
	return lock
}

// AuthorizeURL monta a URL de autorização do Bling para o fluxo
// authorization_code. O state deve ser verificado no callback.
func (tm *TokenManager) AuthorizeURL(state string) string {
	query := url.Values{}
	query.Set("response_type", "code")
	query.Set("client_id", tm.cfg.Bling.ClientID)
	query.Set("redirect_uri", tm.cfg.Bling.RedirectURI)
	query.Set("state", state)

	return tm.cfg.Bling.AuthorizeURL + "?" + query.Encode()
}

// ExchangeCode troca o código de autorização por um par de tokens e o
// persiste como credencial do tenant.
func (tm *TokenManager) ExchangeCode(ctx context.Context, tenantID, code string) (*domain.BlingCredential, error) {
	// O redirect_uri precisa repetir o valor usado na autorização, ou o
	// Bling rejeita a troca do código.
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", tm.cfg.Bling.RedirectURI)

	tokenResp, err := tm.requestToken(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("erro ao trocar o código de autorização: %w", err)
	}

	cred := tm.credentialFromResponse(tenantID, tokenResp, "")

	if err := tm.credentials.Upsert(ctx, cred); err != nil {
		return nil, fmt.Errorf("erro ao gravar a credencial do tenant: %w", err)
	}

	logrus.Infof("Tenant %s conectado ao Bling. Token expira em: %s",
		tenantID, cred.ExpiresAt.Format(time.RFC3339))

	return cred, nil
}

// EnsureValidToken devolve uma credencial pronta para uso, renovando o token
// quando ele está expirado ou prestes a expirar.
func (tm *TokenManager) EnsureValidToken(ctx context.Context, tenantID string) (*domain.BlingCredential, error) {
	cred, err := tm.credentials.GetByTenantID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar a credencial do tenant: %w", err)
	}
	if cred == nil {
		return nil, ErrNotConnected
	}

	if cred.State(time.Now()) == domain.TokenStateValid {
		return cred, nil
	}

	return tm.RefreshToken(ctx, tenantID)
}

// RefreshToken renova o token do tenant usando o refresh token armazenado.
// A seção crítica relê a credencial depois de adquirir o lock: se outra
// goroutine acabou de renovar, o token novo é reaproveitado sem uma segunda
// chamada ao Bling.
func (tm *TokenManager) RefreshToken(ctx context.Context, tenantID string) (*domain.BlingCredential, error) {
	return tm.refresh(ctx, tenantID, "")
}

// ForceRefresh renova o token mesmo antes do vencimento previsto, quando o
// Bling já o recusou com 401. staleAccessToken identifica o token recusado:
// se a credencial armazenada já for outra, a renovação de outro processo é
// reaproveitada.
func (tm *TokenManager) ForceRefresh(ctx context.Context, tenantID, staleAccessToken string) (*domain.BlingCredential, error) {
	return tm.refresh(ctx, tenantID, staleAccessToken)
}

func (tm *TokenManager) refresh(ctx context.Context, tenantID, staleAccessToken string) (*domain.BlingCredential, error) {
	lock := tm.lockFor(tenantID)
	lock.Lock()
	defer lock.Unlock()

	cred, err := tm.credentials.GetByTenantID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar a credencial do tenant: %w", err)
	}
	if cred == nil {
		return nil, ErrNotConnected
	}

	if staleAccessToken == "" {
		if cred.State(time.Now()) == domain.TokenStateValid {
			return cred, nil
		}
	} else if cred.AccessToken != staleAccessToken {
		// Outro processo já substituiu o token recusado.
		return cred, nil
	}

	logrus.Infof("Iniciando renovação do token do tenant %s", tenantID)

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", cred.RefreshToken)

	tokenResp, err := tm.requestToken(ctx, form)
	if err != nil {
		if errors.Is(err, ErrReauthorizationRequired) {
			logrus.Errorf("Refresh token do tenant %s rejeitado. É necessário reautorizar o aplicativo", tenantID)
			return nil, err
		}
		return nil, fmt.Errorf("erro ao renovar o token: %w", err)
	}

	newCred := tm.credentialFromResponse(tenantID, tokenResp, cred.RefreshToken)

	updated, err := tm.credentials.UpdateTokens(ctx, newCred, cred.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("erro ao gravar o token renovado: %w", err)
	}

	if !updated {
		// Outro processo rotacionou o refresh token no meio do caminho.
		// A credencial do banco é a mais nova e vence.
		logrus.Warnf("Renovação concorrente detectada para o tenant %s, reutilizando a credencial gravada", tenantID)

		stored, err := tm.credentials.GetByTenantID(ctx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("erro ao reler a credencial do tenant: %w", err)
		}
		if stored == nil {
			return nil, ErrNotConnected
		}
		return stored, nil
	}

	logrus.Infof("Token do tenant %s renovado com sucesso. Expira em: %s",
		tenantID, newCred.ExpiresAt.Format(time.RFC3339))

	return newCred, nil
}

// credentialFromResponse converte a resposta de token em credencial, já com
// a margem de segurança aplicada. Quando o Bling não devolve um refresh
// token novo, o anterior continua valendo.
func (tm *TokenManager) credentialFromResponse(tenantID string, resp *blingdomain.TokenResponse, previousRefreshToken string) *domain.BlingCredential {
	refreshToken := resp.RefreshToken
	if refreshToken == "" {
		refreshToken = previousRefreshToken
	}

	return &domain.BlingCredential{
		TenantID:     tenantID,
		AccessToken:  resp.AccessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Add(-TokenSafetyMargin),
	}
}

// requestToken executa POST /oauth/token autenticando o aplicativo via HTTP
// Basic com client_id e client_secret.
func (tm *TokenManager) requestToken(ctx context.Context, form url.Values) (*blingdomain.TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tm.cfg.Bling.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.SetBasicAuth(tm.cfg.Bling.ClientID, tm.cfg.Bling.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		logrus.Warnf("Bling rejeitou a requisição de token. Status: %d, Corpo: %s", resp.StatusCode, string(body))
		return nil, ErrReauthorizationRequired
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokenResp blingdomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta de token: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("resposta de token sem access_token")
	}

	return &tokenResp, nil
}
