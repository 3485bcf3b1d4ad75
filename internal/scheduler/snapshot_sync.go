package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/blingclient"
	"github.com/vfg2006/strategy-hub-api/infrastructure/repository"
	"github.com/vfg2006/strategy-hub-api/internal/config"
	"github.com/vfg2006/strategy-hub-api/internal/usecases/insighting"
)

// SnapshotSyncConfig representa a configuração do agendador de snapshots
type SnapshotSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	SyncEnabled         bool
}

// SnapshotSyncStatus é o estado corrente do agendador, exposto pela API.
type SnapshotSyncStatus struct {
	Enabled             bool       `json:"enabled"`
	Running             bool       `json:"running"`
	LastSyncStartedAt   *time.Time `json:"last_sync_started_at"`
	LastSyncCompletedAt *time.Time `json:"last_sync_completed_at"`
}

// SnapshotSyncService recalcula periodicamente o snapshot de dashboard de
// todos os tenants ativos, para que o fallback offline nunca fique velho
// demais.
type SnapshotSyncService struct {
	scheduler      *gocron.Scheduler
	config         SnapshotSyncConfig
	tenantRepo     repository.TenantRepository
	insightService insighting.Insighter

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewSnapshotSyncService cria uma nova instância do serviço de sincronização de snapshots
func NewSnapshotSyncService(
	tenantRepo repository.TenantRepository,
	insightService insighting.Insighter,
	appConfig *config.Config,
) *SnapshotSyncService {
	syncConfig := SnapshotSyncConfig{
		CronSchedule:        appConfig.SnapshotSync.CronSchedule,
		LookbackDays:        appConfig.SnapshotSync.LookbackDays,
		RequestDelaySeconds: appConfig.SnapshotSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.SnapshotSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshots carregada")

	return &SnapshotSyncService{
		scheduler:      scheduler,
		config:         syncConfig,
		tenantRepo:     tenantRepo,
		insightService: insightService,
		syncRunning:    false,
	}
}

// Start inicia o agendador
func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de snapshots")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllSnapshots(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de snapshots")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow dispara a sincronização fora do horário agendado.
func (s *SnapshotSyncService) RunNow(ctx context.Context) {
	go s.syncAllSnapshots(ctx)
}

// Status devolve o estado corrente do agendador.
func (s *SnapshotSyncService) Status() SnapshotSyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := SnapshotSyncStatus{
		Enabled: s.config.SyncEnabled,
		Running: s.syncRunning,
	}

	if !s.lastSyncStartedAt.IsZero() {
		startedAt := s.lastSyncStartedAt
		status.LastSyncStartedAt = &startedAt
	}
	if !s.lastSyncCompletedAt.IsZero() {
		completedAt := s.lastSyncCompletedAt
		status.LastSyncCompletedAt = &completedAt
	}

	return status
}

// syncAllSnapshots recalcula o snapshot de todos os tenants ativos, um por
// vez. O processamento é sequencial de propósito: o limite de requisições do
// Bling é por aplicativo, não por tenant.
func (s *SnapshotSyncService) syncAllSnapshots(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	startTime := time.Now()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de snapshots para todos os tenants ativos")

	tenants, err := s.tenantRepo.ListTenants(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de tenants para sincronização de snapshots")
		return
	}

	processed := 0
	for _, tenant := range tenants {
		if !tenant.Active {
			continue
		}

		if ctx.Err() != nil {
			logrus.Info("Sincronização de snapshots interrompida pelo contexto")
			return
		}

		if err := s.insightService.RefreshSnapshot(ctx, tenant.ID); err != nil {
			if errors.Is(err, blingclient.ErrNotConnected) {
				logrus.WithField("tenant_id", tenant.ID).Info("Tenant sem conexão com o Bling, pulando snapshot")
				continue
			}

			logrus.WithError(err).WithFields(logrus.Fields{
				"tenant_id":   tenant.ID,
				"tenant_name": tenant.Name,
			}).Error("Erro ao sincronizar snapshot do tenant")
			continue
		}

		processed++

		time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
	}

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"tenants":   len(tenants),
		"processed": processed,
	}).Info("Sincronização de snapshots concluída")
}
