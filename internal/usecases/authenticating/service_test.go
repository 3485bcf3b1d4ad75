package authenticating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/strategy-hub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/strategy-hub-api/internal/config"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func authConfig(t *testing.T) *config.Config {
	return &config.Config{
		Auth: config.Auth{Secret: "segredo-de-teste"},
		Operator: config.Operator{
			Username:     "admin",
			PasswordHash: hashPassword(t, "senha-do-operador"),
		},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginOperator(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTenantRepo := mocks.NewMockTenantRepository(ctrl)
	service := NewService(mockTenantRepo, authConfig(t))

	t.Run("Operador com senha correta recebe token com role de operador", func(t *testing.T) {
		token, err := service.Login(context.Background(), "admin", "senha-do-operador")

		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, domain.RoleOperator, claims.UserRoleID)
		assert.Empty(t, claims.TenantID)
	})

	t.Run("Operador com senha errada é rejeitado", func(t *testing.T) {
		token, err := service.Login(context.Background(), "admin", "senha-errada")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTenantRepo := mocks.NewMockTenantRepository(ctrl)
	service := NewService(mockTenantRepo, authConfig(t))

	activeTenant := func(passwordHash string) *domain.Tenant {
		return &domain.Tenant{
			ID:           "abc123",
			Name:         "Loja Exemplo",
			Username:     "loja",
			PasswordHash: passwordHash,
			Active:       true,
		}
	}

	t.Run("Tenant com senha correta recebe token com o próprio tenant_id", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByUsername(gomock.Any(), "loja").
			Return(activeTenant(hashPassword(t, "Senha@Forte1")), nil)

		token, err := service.Login(context.Background(), "loja", "Senha@Forte1")

		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "loja", claims.Username)
		assert.Equal(t, "abc123", claims.TenantID)
		assert.Equal(t, domain.RoleTenant, claims.UserRoleID)
	})

	t.Run("Username é normalizado antes da busca", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByUsername(gomock.Any(), "loja").
			Return(activeTenant(hashPassword(t, "Senha@Forte1")), nil)

		_, err := service.Login(context.Background(), "  LoJa ", "Senha@Forte1")

		require.NoError(t, err)
	})

	t.Run("Tenant inexistente é rejeitado", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByUsername(gomock.Any(), "fantasma").
			Return(nil, nil)

		token, err := service.Login(context.Background(), "fantasma", "qualquer")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrTenantNotFound)
	})

	t.Run("Tenant desativado é rejeitado", func(t *testing.T) {
		tenant := activeTenant(hashPassword(t, "Senha@Forte1"))
		tenant.Active = false

		mockTenantRepo.EXPECT().
			GetTenantByUsername(gomock.Any(), "loja").
			Return(tenant, nil)

		token, err := service.Login(context.Background(), "loja", "Senha@Forte1")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrTenantDisabled)
	})

	t.Run("Senha errada é rejeitada com o tenant no detalhe", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByUsername(gomock.Any(), "loja").
			Return(activeTenant(hashPassword(t, "Senha@Forte1")), nil)

		token, err := service.Login(context.Background(), "loja", "senha-errada")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "abc123", authErr.TenantID)
	})

	t.Run("Credenciais vazias são rejeitadas sem consultar o banco", func(t *testing.T) {
		token, err := service.Login(context.Background(), "", "")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestValidateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTenantRepo := mocks.NewMockTenantRepository(ctrl)
	service := NewService(mockTenantRepo, authConfig(t))

	t.Run("Token adulterado é rejeitado", func(t *testing.T) {
		token, err := service.Login(context.Background(), "admin", "senha-do-operador")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token + "x")

		assert.Nil(t, claims)
		assert.Error(t, err)
	})

	t.Run("Token assinado com outro segredo é rejeitado", func(t *testing.T) {
		otherCfg := authConfig(t)
		otherCfg.Auth.Secret = "outro-segredo"
		otherService := NewService(mockTenantRepo, otherCfg)

		token, err := otherService.Login(context.Background(), "admin", "senha-do-operador")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)

		assert.Nil(t, claims)
		assert.Error(t, err)
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	service := &Service{}

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "Senha completa é aceita", password: "Senha@Forte1", valid: true},
		{name: "Senha curta é rejeitada", password: "S@f1", valid: false},
		{name: "Sem maiúscula é rejeitada", password: "senha@forte1", valid: false},
		{name: "Sem minúscula é rejeitada", password: "SENHA@FORTE1", valid: false},
		{name: "Sem número é rejeitada", password: "Senha@Forte", valid: false},
		{name: "Sem caractere especial é rejeitada", password: "SenhaForte1", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGenerateStrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTenantRepo := mocks.NewMockTenantRepository(ctrl)
	service := NewService(mockTenantRepo, authConfig(t))

	tenant := &domain.Tenant{
		ID:           "abc123",
		Username:     "loja",
		PasswordHash: hashPassword(t, "Senha@Antiga1"),
		Active:       true,
	}

	mockTenantRepo.EXPECT().
		GetTenantByID(gomock.Any(), "abc123").
		Return(tenant, nil)

	var savedHash string
	mockTenantRepo.EXPECT().
		UpdateTenant(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *domain.Tenant) error {
			savedHash = updated.PasswordHash
			return nil
		})

	password, err := service.GenerateStrongPassword(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Len(t, password, 12)
	assert.NoError(t, service.ValidatePasswordStrength(password))

	// O hash gravado corresponde à senha devolvida
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(savedHash), []byte(password)))
}

func TestChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTenantRepo := mocks.NewMockTenantRepository(ctrl)
	service := NewService(mockTenantRepo, authConfig(t))

	tenant := func() *domain.Tenant {
		return &domain.Tenant{
			ID:           "abc123",
			Username:     "loja",
			PasswordHash: hashPassword(t, "Senha@Atual1"),
			Active:       true,
		}
	}

	t.Run("Troca válida grava o novo hash", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByID(gomock.Any(), "abc123").
			Return(tenant(), nil)
		mockTenantRepo.EXPECT().
			UpdateTenant(gomock.Any(), gomock.Any()).
			Return(nil)

		err := service.ChangePassword(context.Background(), "abc123", "Senha@Atual1", "Senha@Nova2")

		require.NoError(t, err)
	})

	t.Run("Senha atual incorreta é rejeitada", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByID(gomock.Any(), "abc123").
			Return(tenant(), nil)

		err := service.ChangePassword(context.Background(), "abc123", "senha-errada", "Senha@Nova2")

		assert.Error(t, err)
	})

	t.Run("Nova senha igual à atual é rejeitada", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByID(gomock.Any(), "abc123").
			Return(tenant(), nil)

		err := service.ChangePassword(context.Background(), "abc123", "Senha@Atual1", "Senha@Atual1")

		assert.ErrorIs(t, err, ErrSamePassword)
	})

	t.Run("Nova senha fraca é rejeitada", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByID(gomock.Any(), "abc123").
			Return(tenant(), nil)

		err := service.ChangePassword(context.Background(), "abc123", "Senha@Atual1", "fraca")

		assert.Error(t, err)
	})
}
