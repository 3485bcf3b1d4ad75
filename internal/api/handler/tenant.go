package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
	"github.com/vfg2006/strategy-hub-api/internal/usecases/tenanting"
	"github.com/vfg2006/strategy-hub-api/pkg/apiErrors"
)

type CreateTenantRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateTenant cadastra um novo tenant. Restrito ao operador.
func CreateTenant(service tenanting.TenantManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTenantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		tenant, err := service.CreateTenant(r.Context(), &domain.Tenant{
			Name:         req.Name,
			Username:     req.Username,
			PasswordHash: req.Password,
		})
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, tenanting.ErrorCode(err), err.Error(), nil)
			return
		}

		tenant.PasswordHash = ""

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(tenant)
	}
}

func UpdateTenant(service tenanting.TenantManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if tenantID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do tenant não fornecido", nil)
			return
		}

		var req domain.UpdateTenantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		req.ID = tenantID

		if err := service.UpdateTenant(r.Context(), &req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, tenanting.ErrorCode(err), err.Error(), nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func GetTenant(service tenanting.TenantManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		tenant, err := service.GetTenant(r.Context(), tenantID)
		if err != nil {
			if errors.Is(err, tenanting.ErrTenantNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrTenantNotFound, "Tenant não encontrado", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar tenant", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tenant)
	}
}

func ListTenants(service tenanting.TenantManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenants, err := service.ListTenants(r.Context())
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar tenants", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tenants)
	}
}

// ListTenantUsage devolve os últimos acessos registrados do tenant.
func ListTenantUsage(service tenanting.TenantManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		entries, err := service.ListUsage(r.Context(), tenantID, limit)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar logs de uso", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}
