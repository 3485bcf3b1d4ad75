package blingclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	blingdomain "github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/domain"
	"github.com/vfg2006/strategy-hub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/strategy-hub-api/internal/config"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func blingTokenResponse(expiresIn int) blingdomain.TokenResponse {
	return blingdomain.TokenResponse{
		AccessToken:  "access-novo",
		RefreshToken: "refresh-novo",
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}
}

func testConfig(tokenURL string) *config.Config {
	return &config.Config{
		Bling: config.Bling{
			APIURL:         "https://api.bling.com.br/Api/v3",
			TokenURL:       tokenURL,
			AuthorizeURL:   "https://api.bling.com.br/Api/v3/oauth/authorize",
			RedirectURI:    "https://app.exemplo.com/bling/callback",
			ClientID:       "client-id",
			ClientSecret:   "client-secret",
			RequestTimeout: 5 * time.Second,
		},
	}
}

func TestAuthorizeURL(t *testing.T) {
	tm := NewTokenManager(testConfig(""), nil)

	authorizeURL := tm.AuthorizeURL("tenant-abc")

	assert.Contains(t, authorizeURL, "https://api.bling.com.br/Api/v3/oauth/authorize?")
	assert.Contains(t, authorizeURL, "response_type=code")
	assert.Contains(t, authorizeURL, "client_id=client-id")
	assert.Contains(t, authorizeURL, "redirect_uri=https%3A%2F%2Fapp.exemplo.com%2Fbling%2Fcallback")
	assert.Contains(t, authorizeURL, "state=tenant-abc")
}

func TestExchangeCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "codigo-abc", r.PostForm.Get("code"))
		// O mesmo redirect_uri da autorização acompanha a troca do código
		assert.Equal(t, "https://app.exemplo.com/bling/callback", r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-novo","refresh_token":"refresh-novo","expires_in":21600,"token_type":"Bearer"}`))
	}))
	defer server.Close()

	mockCredRepo := mocks.NewMockCredentialRepository(ctrl)
	tm := NewTokenManager(testConfig(server.URL), mockCredRepo)

	mockCredRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		Return(nil)

	cred, err := tm.ExchangeCode(context.Background(), "abc123", "codigo-abc")

	require.NoError(t, err)
	assert.Equal(t, "abc123", cred.TenantID)
	assert.Equal(t, "access-novo", cred.AccessToken)
	assert.Equal(t, "refresh-novo", cred.RefreshToken)
}

func TestCredentialFromResponse(t *testing.T) {
	tm := NewTokenManager(testConfig(""), nil)

	t.Run("Deve aplicar a margem de segurança ao vencimento", func(t *testing.T) {
		resp := blingTokenResponse(3600)

		before := time.Now()
		cred := tm.credentialFromResponse("abc123", &resp, "")
		after := time.Now()

		// expires_in de 1h menos a margem de 60s
		expectedMin := before.Add(3600*time.Second - TokenSafetyMargin)
		expectedMax := after.Add(3600*time.Second - TokenSafetyMargin)

		assert.False(t, cred.ExpiresAt.Before(expectedMin))
		assert.False(t, cred.ExpiresAt.After(expectedMax))
		assert.Equal(t, "access-novo", cred.AccessToken)
		assert.Equal(t, "refresh-novo", cred.RefreshToken)
	})

	t.Run("Resposta sem refresh token deve manter o anterior", func(t *testing.T) {
		resp := blingTokenResponse(3600)
		resp.RefreshToken = ""

		cred := tm.credentialFromResponse("abc123", &resp, "refresh-antigo")

		assert.Equal(t, "refresh-antigo", cred.RefreshToken)
	})
}

func TestEnsureValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCredRepo := mocks.NewMockCredentialRepository(ctrl)
	tm := NewTokenManager(testConfig(""), mockCredRepo)

	t.Run("Tenant sem credencial deve retornar ErrNotConnected", func(t *testing.T) {
		mockCredRepo.EXPECT().
			GetByTenantID(gomock.Any(), "abc123").
			Return(nil, nil)

		cred, err := tm.EnsureValidToken(context.Background(), "abc123")

		assert.Nil(t, cred)
		assert.ErrorIs(t, err, ErrNotConnected)
	})

	t.Run("Token válido deve ser reaproveitado sem renovação", func(t *testing.T) {
		stored := &domain.BlingCredential{
			TenantID:     "abc123",
			AccessToken:  "access-atual",
			RefreshToken: "refresh-atual",
			ExpiresAt:    time.Now().Add(1 * time.Hour),
		}

		mockCredRepo.EXPECT().
			GetByTenantID(gomock.Any(), "abc123").
			Return(stored, nil)

		cred, err := tm.EnsureValidToken(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "access-atual", cred.AccessToken)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("Renovação bem sucedida grava e devolve a credencial nova", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "client-id", username)
			assert.Equal(t, "client-secret", password)

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
			assert.Equal(t, "refresh-antigo", r.PostForm.Get("refresh_token"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"access-novo","refresh_token":"refresh-novo","expires_in":21600,"token_type":"Bearer"}`))
		}))
		defer server.Close()

		mockCredRepo := mocks.NewMockCredentialRepository(ctrl)
		tm := NewTokenManager(testConfig(server.URL), mockCredRepo)

		expired := &domain.BlingCredential{
			TenantID:     "abc123",
			AccessToken:  "access-antigo",
			RefreshToken: "refresh-antigo",
			ExpiresAt:    time.Now().Add(-1 * time.Minute),
		}

		mockCredRepo.EXPECT().
			GetByTenantID(gomock.Any(), "abc123").
			Return(expired, nil)

		mockCredRepo.EXPECT().
			UpdateTokens(gomock.Any(), gomock.Any(), "refresh-antigo").
			Return(true, nil)

		cred, err := tm.RefreshToken(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "access-novo", cred.AccessToken)
		assert.Equal(t, "refresh-novo", cred.RefreshToken)
	})

	t.Run("Credencial já válida após o lock dispensa a chamada ao Bling", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCredRepo := mocks.NewMockCredentialRepository(ctrl)
		tm := NewTokenManager(testConfig(""), mockCredRepo)

		valid := &domain.BlingCredential{
			TenantID:     "abc123",
			AccessToken:  "access-renovado-por-outro",
			RefreshToken: "refresh-renovado-por-outro",
			ExpiresAt:    time.Now().Add(2 * time.Hour),
		}

		mockCredRepo.EXPECT().
			GetByTenantID(gomock.Any(), "abc123").
			Return(valid, nil)

		cred, err := tm.RefreshToken(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "access-renovado-por-outro", cred.AccessToken)
	})

	t.Run("Renovação concorrente reutiliza a credencial do banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"access-novo","refresh_token":"refresh-novo","expires_in":21600,"token_type":"Bearer"}`))
		}))
		defer server.Close()

		mockCredRepo := mocks.NewMockCredentialRepository(ctrl)
		tm := NewTokenManager(testConfig(server.URL), mockCredRepo)

		expired := &domain.BlingCredential{
			TenantID:     "abc123",
			AccessToken:  "access-antigo",
			RefreshToken: "refresh-antigo",
			ExpiresAt:    time.Now().Add(-1 * time.Minute),
		}

		storedByOther := &domain.BlingCredential{
			TenantID:     "abc123",
			AccessToken:  "access-de-outro-processo",
			RefreshToken: "refresh-de-outro-processo",
			ExpiresAt:    time.Now().Add(5 * time.Hour),
		}

		gomock.InOrder(
			mockCredRepo.EXPECT().
				GetByTenantID(gomock.Any(), "abc123").
				Return(expired, nil),
			mockCredRepo.EXPECT().
				UpdateTokens(gomock.Any(), gomock.Any(), "refresh-antigo").
				Return(false, nil),
			mockCredRepo.EXPECT().
				GetByTenantID(gomock.Any(), "abc123").
				Return(storedByOther, nil),
		)

		cred, err := tm.RefreshToken(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "access-de-outro-processo", cred.AccessToken)
	})

	t.Run("Renovação forçada ignora o vencimento previsto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"access-novo","refresh_token":"refresh-novo","expires_in":21600,"token_type":"Bearer"}`))
		}))
		defer server.Close()

		mockCredRepo := mocks.NewMockCredentialRepository(ctrl)
		tm := NewTokenManager(testConfig(server.URL), mockCredRepo)

		// Válida localmente, mas o Bling já recusou o access token.
		revoked := &domain.BlingCredential{
			TenantID:     "abc123",
			AccessToken:  "access-revogado",
			RefreshToken: "refresh-antigo",
			ExpiresAt:    time.Now().Add(1 * time.Hour),
		}

		mockCredRepo.EXPECT().
			GetByTenantID(gomock.Any(), "abc123").
			Return(revoked, nil)

		mockCredRepo.EXPECT().
			UpdateTokens(gomock.Any(), gomock.Any(), "refresh-antigo").
			Return(true, nil)

		cred, err := tm.ForceRefresh(context.Background(), "abc123", "access-revogado")

		require.NoError(t, err)
		assert.Equal(t, "access-novo", cred.AccessToken)
	})

	t.Run("Renovação forçada reaproveita o token já substituído por outro processo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCredRepo := mocks.NewMockCredentialRepository(ctrl)
		tm := NewTokenManager(testConfig(""), mockCredRepo)

		replaced := &domain.BlingCredential{
			TenantID:     "abc123",
			AccessToken:  "access-de-outro-processo",
			RefreshToken: "refresh-de-outro-processo",
			ExpiresAt:    time.Now().Add(5 * time.Hour),
		}

		mockCredRepo.EXPECT().
			GetByTenantID(gomock.Any(), "abc123").
			Return(replaced, nil)

		cred, err := tm.ForceRefresh(context.Background(), "abc123", "access-revogado")

		require.NoError(t, err)
		assert.Equal(t, "access-de-outro-processo", cred.AccessToken)
	})

	t.Run("Refresh token rejeitado exige reautorização", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"type":"invalid_grant"}}`))
		}))
		defer server.Close()

		mockCredRepo := mocks.NewMockCredentialRepository(ctrl)
		tm := NewTokenManager(testConfig(server.URL), mockCredRepo)

		expired := &domain.BlingCredential{
			TenantID:     "abc123",
			AccessToken:  "access-antigo",
			RefreshToken: "refresh-antigo",
			ExpiresAt:    time.Now().Add(-1 * time.Minute),
		}

		mockCredRepo.EXPECT().
			GetByTenantID(gomock.Any(), "abc123").
			Return(expired, nil)

		cred, err := tm.RefreshToken(context.Background(), "abc123")

		assert.Nil(t, cred)
		assert.ErrorIs(t, err, ErrReauthorizationRequired)
	})
}
