package domain

import "time"

// UsageLog registra cada acesso relevante de um tenant à plataforma.
type UsageLog struct {
	ID        int64     `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}
