package handler

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/strategy-hub-api/internal/scheduler"
	"github.com/vfg2006/strategy-hub-api/pkg/apiErrors"
)

// CronJobServices contém os serviços de cron disponíveis para execução manual
type CronJobServices struct {
	SnapshotSyncService *scheduler.SnapshotSyncService
}

// RunCronJob dispara manualmente a sincronização de snapshots.
// Restrito ao operador via middleware de role.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if services.SnapshotSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de snapshots não disponível", nil)
			return
		}

		logrus.Info("Sincronização de snapshots disparada manualmente")

		// A sincronização sobrevive à requisição que a disparou.
		services.SnapshotSyncService.RunNow(context.Background())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "started",
		})
	}
}

// GetCronStatus devolve o estado do agendador de snapshots.
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if services.SnapshotSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de snapshots não disponível", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(services.SnapshotSyncService.Status())
	}
}
