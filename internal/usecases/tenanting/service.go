package tenanting

import (
	"context"
	"errors"
	"time"

	"github.com/vfg2006/strategy-hub-api/infrastructure/repository"
	"github.com/vfg2006/strategy-hub-api/internal/domain"
	"github.com/vfg2006/strategy-hub-api/pkg/apiErrors"
	"github.com/vfg2006/strategy-hub-api/pkg/log"
	"github.com/vfg2006/strategy-hub-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrTenantNotFound      = errors.New("tenant não encontrado")
	ErrTenantAlreadyExists = errors.New("username já cadastrado")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
)

// TenantManager concentra o cadastro e a administração de tenants,
// operações restritas à conta de operador.
type TenantManager interface {
	CreateTenant(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	UpdateTenant(ctx context.Context, req *domain.UpdateTenantRequest) error
	GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error)
	ListTenants(ctx context.Context) ([]*domain.Tenant, error)
	RecordUsage(ctx context.Context, entry *domain.UsageLog)
	ListUsage(ctx context.Context, tenantID string, limit int) ([]*domain.UsageLog, error)
}

type Service struct {
	tenantRepo   repository.TenantRepository
	usageLogRepo repository.UsageLogRepository
}

func NewService(tenantRepo repository.TenantRepository, usageLogRepo repository.UsageLogRepository) TenantManager {
	return &Service{
		tenantRepo:   tenantRepo,
		usageLogRepo: usageLogRepo,
	}
}

// CreateTenant cadastra um novo tenant com identificador curto gerado e a
// senha inicial informada em PasswordHash (em claro neste ponto).
func (s *Service) CreateTenant(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	if tenant.Name == "" || tenant.Username == "" || tenant.PasswordHash == "" {
		return nil, ErrMissingRequiredData
	}

	existing, err := s.tenantRepo.GetTenantByUsername(ctx, tenant.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTenantAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tenant.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	tenant.ID = id
	tenant.PasswordHash = string(hashedPassword)
	tenant.Active = true

	return s.tenantRepo.CreateTenant(ctx, tenant)
}

func (s *Service) UpdateTenant(ctx context.Context, req *domain.UpdateTenantRequest) error {
	if req.ID == "" {
		return ErrMissingRequiredData
	}

	tenant, err := s.tenantRepo.GetTenantByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return ErrTenantNotFound
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}

	if req.Username != nil {
		tenant.Username = *req.Username
	}

	if req.Active != nil {
		tenant.Active = *req.Active
	}

	if req.Deleted != nil && *req.Deleted {
		now := time.Now()
		tenant.Deleted = true
		tenant.DeletedAt = &now
	}

	return s.tenantRepo.UpdateTenant(ctx, tenant)
}

func (s *Service) GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}

	tenant.PasswordHash = ""
	return tenant, nil
}

func (s *Service) ListTenants(ctx context.Context) ([]*domain.Tenant, error) {
	return s.tenantRepo.ListTenants(ctx)
}

// RecordUsage grava o acesso sem propagar falha: auditoria não derruba a
// requisição do tenant.
func (s *Service) RecordUsage(ctx context.Context, entry *domain.UsageLog) {
	if err := s.usageLogRepo.CreateUsageLog(ctx, entry); err != nil {
		log.L.WithError(err).WithFields(log.Fields{
			"tenant_id": entry.TenantID,
			"action":    entry.Action,
		}).Warn("Falha ao registrar log de uso")
	}
}

func (s *Service) ListUsage(ctx context.Context, tenantID string, limit int) ([]*domain.UsageLog, error) {
	return s.usageLogRepo.ListUsageLogsByTenant(ctx, tenantID, limit)
}

// ErrorCode mapeia os erros do pacote para os códigos expostos pela API.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		return apiErrors.ErrTenantNotFound
	case errors.Is(err, ErrTenantAlreadyExists):
		return apiErrors.ErrTenantAlreadyExists
	case errors.Is(err, ErrMissingRequiredData):
		return apiErrors.ErrMissingRequiredData
	default:
		return apiErrors.ErrInternalServer
	}
}
