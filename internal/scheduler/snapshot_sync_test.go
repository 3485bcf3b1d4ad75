package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/blingclient"
	"github.com/vfg2006/strategy-hub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/strategy-hub-api/internal/config"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
	insightmocks "github.com/vfg2006/strategy-hub-api/internal/usecases/insighting/mocks"
	"go.uber.org/mock/gomock"
)

func syncServiceForTest(t *testing.T) (*SnapshotSyncService, *mocks.MockTenantRepository, *insightmocks.MockInsighter) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockTenantRepo := mocks.NewMockTenantRepository(ctrl)
	mockInsighter := insightmocks.NewMockInsighter(ctrl)

	appConfig := &config.Config{
		SnapshotSync: config.SnapshotSync{
			CronSchedule:        "0 5 * * *",
			LookbackDays:        90,
			RequestDelaySeconds: 0,
			Enabled:             true,
		},
	}

	return NewSnapshotSyncService(mockTenantRepo, mockInsighter, appConfig), mockTenantRepo, mockInsighter
}

func TestSyncAllSnapshots(t *testing.T) {
	t.Run("Apenas tenants ativos são sincronizados", func(t *testing.T) {
		service, mockTenantRepo, mockInsighter := syncServiceForTest(t)

		mockTenantRepo.EXPECT().
			ListTenants(gomock.Any()).
			Return([]*domain.Tenant{
				{ID: "aaa111", Name: "Loja A", Active: true},
				{ID: "bbb222", Name: "Loja B", Active: false},
				{ID: "ccc333", Name: "Loja C", Active: true},
			}, nil)

		mockInsighter.EXPECT().RefreshSnapshot(gomock.Any(), "aaa111").Return(nil)
		mockInsighter.EXPECT().RefreshSnapshot(gomock.Any(), "ccc333").Return(nil)

		service.syncAllSnapshots(context.Background())

		status := service.Status()
		assert.False(t, status.Running)
		assert.NotNil(t, status.LastSyncStartedAt)
		assert.NotNil(t, status.LastSyncCompletedAt)
	})

	t.Run("Tenant sem conexão com o Bling é pulado sem abortar os demais", func(t *testing.T) {
		service, mockTenantRepo, mockInsighter := syncServiceForTest(t)

		mockTenantRepo.EXPECT().
			ListTenants(gomock.Any()).
			Return([]*domain.Tenant{
				{ID: "aaa111", Name: "Loja A", Active: true},
				{ID: "bbb222", Name: "Loja B", Active: true},
			}, nil)

		mockInsighter.EXPECT().
			RefreshSnapshot(gomock.Any(), "aaa111").
			Return(blingclient.ErrNotConnected)
		mockInsighter.EXPECT().
			RefreshSnapshot(gomock.Any(), "bbb222").
			Return(nil)

		service.syncAllSnapshots(context.Background())
	})

	t.Run("Falha em um tenant não interrompe os demais", func(t *testing.T) {
		service, mockTenantRepo, mockInsighter := syncServiceForTest(t)

		mockTenantRepo.EXPECT().
			ListTenants(gomock.Any()).
			Return([]*domain.Tenant{
				{ID: "aaa111", Name: "Loja A", Active: true},
				{ID: "bbb222", Name: "Loja B", Active: true},
			}, nil)

		mockInsighter.EXPECT().
			RefreshSnapshot(gomock.Any(), "aaa111").
			Return(assert.AnError)
		mockInsighter.EXPECT().
			RefreshSnapshot(gomock.Any(), "bbb222").
			Return(nil)

		service.syncAllSnapshots(context.Background())
	})

	t.Run("Erro ao listar tenants encerra a rodada", func(t *testing.T) {
		service, mockTenantRepo, _ := syncServiceForTest(t)

		mockTenantRepo.EXPECT().
			ListTenants(gomock.Any()).
			Return(nil, assert.AnError)

		service.syncAllSnapshots(context.Background())

		status := service.Status()
		assert.False(t, status.Running)
	})

	t.Run("Contexto cancelado interrompe a varredura", func(t *testing.T) {
		service, mockTenantRepo, _ := syncServiceForTest(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		mockTenantRepo.EXPECT().
			ListTenants(gomock.Any()).
			Return([]*domain.Tenant{
				{ID: "aaa111", Name: "Loja A", Active: true},
			}, nil)

		// Nenhuma chamada a RefreshSnapshot é esperada
		service.syncAllSnapshots(ctx)
	})
}

func TestSnapshotSyncStatus(t *testing.T) {
	service, _, _ := syncServiceForTest(t)

	status := service.Status()

	assert.True(t, status.Enabled)
	assert.False(t, status.Running)
	assert.Nil(t, status.LastSyncStartedAt)
	assert.Nil(t, status.LastSyncCompletedAt)
}

func TestStartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTenantRepo := mocks.NewMockTenantRepository(ctrl)
	mockInsighter := insightmocks.NewMockInsighter(ctrl)

	appConfig := &config.Config{
		SnapshotSync: config.SnapshotSync{
			CronSchedule: "0 5 * * *",
			Enabled:      false,
		},
	}

	service := NewSnapshotSyncService(mockTenantRepo, mockInsighter, appConfig)

	// Desabilitado: nada é agendado e nenhum erro é devolvido
	assert.NoError(t, service.Start(context.Background()))
}
