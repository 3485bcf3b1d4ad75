package tenanting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/strategy-hub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
	"github.com/vfg2006/strategy-hub-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTenantRepo := mocks.NewMockTenantRepository(ctrl)
	mockUsageLogRepo := mocks.NewMockUsageLogRepository(ctrl)
	service := NewService(mockTenantRepo, mockUsageLogRepo)

	t.Run("Cadastro válido gera identificador e grava hash da senha", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByUsername(gomock.Any(), "loja").
			Return(nil, nil)

		mockTenantRepo.EXPECT().
			CreateTenant(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
				assert.NotEmpty(t, tenant.ID)
				assert.True(t, tenant.Active)
				// A senha nunca chega em claro ao repositório
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(tenant.PasswordHash), []byte("Senha@Forte1")))
				return tenant, nil
			})

		created, err := service.CreateTenant(context.Background(), &domain.Tenant{
			Name:         "Loja Exemplo",
			Username:     "loja",
			PasswordHash: "Senha@Forte1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
	})

	t.Run("Username já cadastrado é rejeitado", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByUsername(gomock.Any(), "loja").
			Return(&domain.Tenant{ID: "abc123", Username: "loja"}, nil)

		created, err := service.CreateTenant(context.Background(), &domain.Tenant{
			Name:         "Outra Loja",
			Username:     "loja",
			PasswordHash: "Senha@Forte1",
		})

		assert.Nil(t, created)
		assert.ErrorIs(t, err, ErrTenantAlreadyExists)
	})

	t.Run("Campos obrigatórios ausentes são rejeitados", func(t *testing.T) {
		created, err := service.CreateTenant(context.Background(), &domain.Tenant{
			Name: "Sem Username",
		})

		assert.Nil(t, created)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestUpdateTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTenantRepo := mocks.NewMockTenantRepository(ctrl)
	mockUsageLogRepo := mocks.NewMockUsageLogRepository(ctrl)
	service := NewService(mockTenantRepo, mockUsageLogRepo)

	t.Run("Apenas os campos presentes são alterados", func(t *testing.T) {
		stored := &domain.Tenant{
			ID:       "abc123",
			Name:     "Nome Antigo",
			Username: "loja",
			Active:   true,
		}

		mockTenantRepo.EXPECT().
			GetTenantByID(gomock.Any(), "abc123").
			Return(stored, nil)

		mockTenantRepo.EXPECT().
			UpdateTenant(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tenant *domain.Tenant) error {
				assert.Equal(t, "Nome Novo", tenant.Name)
				assert.Equal(t, "loja", tenant.Username)
				return nil
			})

		newName := "Nome Novo"
		err := service.UpdateTenant(context.Background(), &domain.UpdateTenantRequest{
			ID:   "abc123",
			Name: &newName,
		})

		require.NoError(t, err)
	})

	t.Run("Exclusão marca o tenant como removido", func(t *testing.T) {
		stored := &domain.Tenant{ID: "abc123", Name: "Loja", Username: "loja", Active: true}

		mockTenantRepo.EXPECT().
			GetTenantByID(gomock.Any(), "abc123").
			Return(stored, nil)

		mockTenantRepo.EXPECT().
			UpdateTenant(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tenant *domain.Tenant) error {
				assert.True(t, tenant.Deleted)
				assert.NotNil(t, tenant.DeletedAt)
				return nil
			})

		deleted := true
		err := service.UpdateTenant(context.Background(), &domain.UpdateTenantRequest{
			ID:      "abc123",
			Deleted: &deleted,
		})

		require.NoError(t, err)
	})

	t.Run("Tenant inexistente retorna erro", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByID(gomock.Any(), "fantasma").
			Return(nil, nil)

		err := service.UpdateTenant(context.Background(), &domain.UpdateTenantRequest{ID: "fantasma"})

		assert.ErrorIs(t, err, ErrTenantNotFound)
	})
}

func TestGetTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTenantRepo := mocks.NewMockTenantRepository(ctrl)
	mockUsageLogRepo := mocks.NewMockUsageLogRepository(ctrl)
	service := NewService(mockTenantRepo, mockUsageLogRepo)

	t.Run("Hash da senha nunca sai do serviço", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByID(gomock.Any(), "abc123").
			Return(&domain.Tenant{ID: "abc123", PasswordHash: "hash-secreto"}, nil)

		tenant, err := service.GetTenant(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Empty(t, tenant.PasswordHash)
	})

	t.Run("Tenant inexistente retorna erro", func(t *testing.T) {
		mockTenantRepo.EXPECT().
			GetTenantByID(gomock.Any(), "fantasma").
			Return(nil, nil)

		tenant, err := service.GetTenant(context.Background(), "fantasma")

		assert.Nil(t, tenant)
		assert.ErrorIs(t, err, ErrTenantNotFound)
	})
}

func TestRecordUsage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTenantRepo := mocks.NewMockTenantRepository(ctrl)
	mockUsageLogRepo := mocks.NewMockUsageLogRepository(ctrl)
	service := NewService(mockTenantRepo, mockUsageLogRepo)

	t.Run("Falha na auditoria não propaga erro", func(t *testing.T) {
		mockUsageLogRepo.EXPECT().
			CreateUsageLog(gomock.Any(), gomock.Any()).
			Return(assert.AnError)

		// Não há retorno para verificar: basta não entrar em pânico
		service.RecordUsage(context.Background(), &domain.UsageLog{
			TenantID: "abc123",
			Action:   "dashboard_view",
		})
	})
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Tenant não encontrado", err: ErrTenantNotFound, expected: apiErrors.ErrTenantNotFound},
		{name: "Username duplicado", err: ErrTenantAlreadyExists, expected: apiErrors.ErrTenantAlreadyExists},
		{name: "Dados ausentes", err: ErrMissingRequiredData, expected: apiErrors.ErrMissingRequiredData},
		{name: "Erro desconhecido", err: assert.AnError, expected: apiErrors.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorCode(tt.err))
		})
	}
}
