package auth

import "fmt"

// Token is the decoded response of a client-credentials exchange.
// Optional fields are pointers so an absent field stays distinguishable
// from an empty one. The core does not track expiry or refresh tokens;
// both are the caller's responsibility.
type Token struct {
	AccessToken  string  `json:"access_token"`
	TokenType    string  `json:"token_type"`
	ExpiresIn    *int64  `json:"expires_in,omitempty"`
	RefreshToken *string `json:"refresh_token,omitempty"`
	Scope        *string `json:"scope,omitempty"`
}

// Validate checks that the required fields of a decoded token response
// are present.
func (t *Token) Validate() error {
	if t.AccessToken == "" {
		return fmt.Errorf("token response missing access_token")
	}
	if t.TokenType == "" {
		return fmt.Errorf("token response missing token_type")
	}
	return nil
}
