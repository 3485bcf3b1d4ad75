package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling"
	"github.com/vfg2006/strategy-hub-api/internal/api/handler/router"
	"github.com/vfg2006/strategy-hub-api/internal/usecases/authenticating"
	"github.com/vfg2006/strategy-hub-api/internal/usecases/insighting"
	"github.com/vfg2006/strategy-hub-api/internal/usecases/tenanting"
	"github.com/vfg2006/strategy-hub-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/tenants/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
	}
}

func Tenants(service tenanting.TenantManager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/tenants",
			Method:      http.MethodGet,
			Handler:     ListTenants(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/tenants",
			Method:      http.MethodPost,
			Handler:     CreateTenant(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/tenants/:id",
			Method:      http.MethodGet,
			Handler:     GetTenant(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/tenants/:id",
			Method:      http.MethodPut,
			Handler:     UpdateTenant(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/tenants/:id/usage",
			Method:      http.MethodGet,
			Handler:     ListTenantUsage(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
	}
}

func BlingConnection(service bling.Integrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/bling/authorize-url",
			Method:      http.MethodGet,
			Handler:     GetBlingAuthorizeURL(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/bling/connect",
			Method:      http.MethodPost,
			Handler:     ConnectBling(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/bling/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshBlingToken(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/bling/status",
			Method:      http.MethodGet,
			Handler:     GetBlingTokenStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Dashboard(service insighting.Insighter, tenantService tenanting.TenantManager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service, tenantService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/snapshots/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
	}
}
