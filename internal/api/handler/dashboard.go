package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/blingclient"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
	"github.com/vfg2006/strategy-hub-api/internal/usecases/insighting"
	"github.com/vfg2006/strategy-hub-api/internal/usecases/tenanting"
	"github.com/vfg2006/strategy-hub-api/pkg/apiErrors"
	"github.com/vfg2006/strategy-hub-api/pkg/middleware"
	"github.com/vfg2006/strategy-hub-api/pkg/utils"
)

// GetDashboard monta o dashboard do tenant para o período pedido.
// Aceita start_date e end_date (YYYY-MM-DD) e channel como filtros.
func GetDashboard(service insighting.Insighter, tenantService tenanting.TenantManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := resolveTenantID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tenant não identificado", nil)
			return
		}

		filters, err := parseDashboardFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		recordDashboardUsage(r, tenantService, tenantID)

		snapshot, err := service.GetDashboard(r.Context(), tenantID, filters)
		if err != nil {
			handleDashboardError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}

func parseDashboardFilters(r *http.Request) (*domain.DashboardFilters, error) {
	filters := &domain.DashboardFilters{
		Channel: r.URL.Query().Get("channel"),
	}

	if startStr := r.URL.Query().Get("start_date"); startStr != "" {
		start, err := utils.ParseDate(startStr)
		if err != nil {
			return nil, errors.New("start_date inválida, use o formato YYYY-MM-DD")
		}
		filters.StartDate = start
	}

	if endStr := r.URL.Query().Get("end_date"); endStr != "" {
		end, err := utils.ParseDate(endStr)
		if err != nil {
			return nil, errors.New("end_date inválida, use o formato YYYY-MM-DD")
		}
		filters.EndDate = end
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return nil, errors.New("end_date anterior a start_date")
	}

	return filters, nil
}

func recordDashboardUsage(r *http.Request, tenantService tenanting.TenantManager, tenantID string) {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		return
	}

	tenantService.RecordUsage(r.Context(), &domain.UsageLog{
		TenantID: tenantID,
		Username: userClaims.Username,
		Action:   "dashboard_view",
		Path:     r.URL.Path,
	})
}

func handleDashboardError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var reqErr *blingclient.RequestError

	switch {
	case errors.Is(err, blingclient.ErrNotConnected):
		apiErrors.WriteError(w, apiErrors.ErrVendorNotConnected, "Tenant não conectado ao Bling", nil)

	case errors.Is(err, blingclient.ErrReauthorizationRequired):
		apiErrors.WriteError(w, apiErrors.ErrVendorAuth, "Reautorização necessária junto ao Bling", nil)

	case errors.As(err, &reqErr):
		if reqErr.StatusCode >= http.StatusInternalServerError || reqErr.StatusCode == http.StatusTooManyRequests {
			apiErrors.WriteError(w, apiErrors.ErrVendorUnavailable, "Bling indisponível no momento", nil)
			return
		}
		apiErrors.WriteError(w, apiErrors.ErrVendorFetch, "Falha na consulta ao Bling", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar o dashboard", nil)
	}
}
