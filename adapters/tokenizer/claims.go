package tokenizer

import "github.com/golang-jwt/jwt/v5"

// AccessClaims combines standard claims with access-specific ones
type AccessClaims struct {
	jwt.RegisteredClaims
	Role      int    `json:"role"`
	RefreshID string `json:"rid"` // ID of the refresh token this access token belongs to
}

// RefreshClaims combine standard claims with the subject's role
type RefreshClaims struct {
	jwt.RegisteredClaims
	Role int `json:"role"`
}
