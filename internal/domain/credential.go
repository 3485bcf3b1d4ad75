package domain

import "time"

type TokenState string

const (
	TokenStateValid    TokenState = "valid"
	TokenStateExpiring TokenState = "expiring"
	TokenStateExpired  TokenState = "expired"
)

// ExpiringMargin define a antecedência com que um token passa a ser
// considerado "expiring" e candidato a refresh proativo.
const ExpiringMargin = 5 * time.Minute

// BlingCredential guarda o par de tokens OAuth2 de um tenant junto ao Bling.
// ExpiresAt já embute a margem de segurança aplicada no momento da gravação.
type BlingCredential struct {
	TenantID     string    `json:"tenant_id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// State classifica o token em relação ao instante informado. A comparação
// com o vencimento é inclusiva: um token é expirado já no instante exato
// de ExpiresAt.
func (c *BlingCredential) State(now time.Time) TokenState {
	if !now.Before(c.ExpiresAt) {
		return TokenStateExpired
	}

	if !now.Before(c.ExpiresAt.Add(-ExpiringMargin)) {
		return TokenStateExpiring
	}

	return TokenStateValid
}
