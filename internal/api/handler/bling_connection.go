package handler

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling"
	"github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/blingclient"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
	"github.com/vfg2006/strategy-hub-api/pkg/apiErrors"
	"github.com/vfg2006/strategy-hub-api/pkg/middleware"
)

type ConnectBlingRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// resolveTenantID identifica o tenant alvo da operação: o próprio tenant
// autenticado, ou o tenant_id da query quando a sessão é de operador.
func resolveTenantID(r *http.Request) (string, bool) {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		return "", false
	}

	if userClaims.TenantID != "" {
		return userClaims.TenantID, true
	}

	if tenantID := r.URL.Query().Get("tenant_id"); tenantID != "" {
		return tenantID, true
	}

	return "", false
}

// GetBlingAuthorizeURL devolve a URL de autorização do Bling para o tenant
// iniciar o fluxo OAuth2. O state carrega o tenant e é conferido no callback.
func GetBlingAuthorizeURL(service bling.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := resolveTenantID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tenant não identificado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"authorize_url": service.AuthorizeURL(tenantID),
		})
	}
}

// ConnectBling troca o código de autorização recebido no callback pelo par
// de tokens do tenant.
func ConnectBling(service bling.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := resolveTenantID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tenant não identificado", nil)
			return
		}

		var req ConnectBlingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Code == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Código de autorização não fornecido", nil)
			return
		}

		if req.State != tenantID {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "State não corresponde ao tenant autenticado", nil)
			return
		}

		cred, err := service.ExchangeCode(r.Context(), tenantID, req.Code)
		if err != nil {
			logrus.Error(err)

			if errors.Is(err, blingclient.ErrReauthorizationRequired) {
				apiErrors.WriteError(w, apiErrors.ErrVendorAuth, "O Bling rejeitou o código de autorização", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao conectar ao Bling", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"connected":  true,
			"expires_at": cred.ExpiresAt.Format(time.RFC3339),
		})
	}
}

// RefreshBlingToken força a renovação do token do tenant.
func RefreshBlingToken(service bling.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := resolveTenantID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tenant não identificado", nil)
			return
		}

		cred, err := service.RefreshToken(r.Context(), tenantID)
		if err != nil {
			handleBlingTokenError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"expires_at": cred.ExpiresAt.Format(time.RFC3339),
		})
	}
}

// GetBlingTokenStatus informa a situação da conexão do tenant com o Bling.
func GetBlingTokenStatus(service bling.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := resolveTenantID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tenant não identificado", nil)
			return
		}

		state, cred, err := service.TokenStatus(r.Context(), tenantID)
		if err != nil {
			handleBlingTokenError(w, err)
			return
		}

		response := map[string]any{
			"state": state,
		}
		if cred != nil {
			response["expires_at"] = cred.ExpiresAt.Format(time.RFC3339)
			response["updated_at"] = cred.UpdatedAt.Format(time.RFC3339)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

func handleBlingTokenError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, blingclient.ErrNotConnected):
		apiErrors.WriteError(w, apiErrors.ErrVendorNotConnected, "Tenant não conectado ao Bling", nil)

	case errors.Is(err, blingclient.ErrReauthorizationRequired):
		apiErrors.WriteError(w, apiErrors.ErrVendorAuth, "Reautorização necessária junto ao Bling", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar a conexão com o Bling", nil)
	}
}
