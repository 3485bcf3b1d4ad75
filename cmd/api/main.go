package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/strategy-hub-api/infrastructure/database/postgres"
	"github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling"
	"github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/blingclient"
	"github.com/vfg2006/strategy-hub-api/infrastructure/repository"
	"github.com/vfg2006/strategy-hub-api/internal/api"
	"github.com/vfg2006/strategy-hub-api/internal/config"
	"github.com/vfg2006/strategy-hub-api/internal/scheduler"
	"github.com/vfg2006/strategy-hub-api/internal/usecases/authenticating"
	"github.com/vfg2006/strategy-hub-api/internal/usecases/insighting"
	"github.com/vfg2006/strategy-hub-api/internal/usecases/normalizing"
	"github.com/vfg2006/strategy-hub-api/internal/usecases/tenanting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	tenantRepo := repository.NewTenantRepository(pgConn)
	credentialRepo := repository.NewCredentialRepository(pgConn)
	usageLogRepo := repository.NewUsageLogRepository(pgConn)
	snapshotRepo := repository.NewDashboardSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(tenantRepo, cfg)
	tenantService := tenanting.NewService(tenantRepo, usageLogRepo)

	tokenManager := blingclient.NewTokenManager(cfg, credentialRepo)
	blingClient := blingclient.NewClient(cfg)
	blingService := bling.New(cfg, blingClient, tokenManager)

	normalizer := normalizing.NewService()
	insightService := insighting.NewService(cfg, blingService, normalizer, snapshotRepo)

	// Inicializa o agendador de sincronização de snapshots
	snapshotSyncService := scheduler.NewSnapshotSyncService(tenantRepo, insightService, cfg)

	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de snapshots")
	} else {
		logrus.Info("Agendador de sincronização de snapshots iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		tenantService,
		blingService,
		insightService,
		snapshotSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
