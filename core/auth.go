package core

import "time"

// TokenType tags a token with its intended use. A token is only accepted
// where its type matches the expected one.
type TokenType string

const (
	TokenTypeAccess  TokenType = "auth:access"
	TokenTypeRefresh TokenType = "auth:refresh"
)

// Session represents an authenticated user session
type Session struct {
	ID            string    // Unique session identifier
	Subject       string    // ID of the authenticated user
	Role          Role      // Role of the authenticated user
	IssuedAt      time.Time // When the session was created
	AccessExpiry  time.Time // When the access capability expires
	RefreshExpiry time.Time // When the refresh capability expires
	RefreshID     string    // Unique identifier for the refresh token
}

// TokenPair is the signed access/refresh pair handed to a client after a
// successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthAction names an auditable auth lifecycle event.
type AuthAction string

const (
	AuthActionIssue   AuthAction = "auth.issue"
	AuthActionRefresh AuthAction = "auth.refresh"
	AuthActionRevoke  AuthAction = "auth.revoke"
)
