package domain

// TokenResponse é a resposta de POST /oauth/token, tanto para o grant
// authorization_code quanto para refresh_token.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token"`
}

// ErrorResponse é o corpo de erro padrão da API do Bling.
type ErrorResponse struct {
	Error struct {
		Type        string `json:"type"`
		Message     string `json:"message"`
		Description string `json:"description"`
	} `json:"error"`
}
