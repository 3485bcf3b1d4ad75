package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles aceitos nas claims de autenticação.
const (
	RoleOperator = 1
	RoleTenant   = 3
)

type Tenant struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Active       bool       `json:"active"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UpdateTenantRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Active   *bool   `json:"active"`
	Deleted  *bool   `json:"deleted"`
}

type Claims struct {
	Username   string
	Name       string
	TenantID   string // vazio para a conta de operador
	UserRoleID int
	jwt.RegisteredClaims
}
