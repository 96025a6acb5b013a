package service

import (
	"github.com/google/uuid"

	"passport/internal/errors"
)

// Sentinel errors reported by TokenService implementations. Verification
// failures always satisfy the domain-specific sentinel; expired tokens
// additionally satisfy ErrTokenExpired so callers that care can tell the two
// apart, while the delivery boundary collapses both to one generic rejection.
var (
	ErrAccessTokenInvalid  = errors.New("invalid access token")
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
	ErrTokenExpired        = errors.New("token expired")
)

// TokenPayload is the identity information carried inside both token domains.
// Temporal claims (issued-at, expiry) are managed by the signing algorithm and
// never appear here.
type TokenPayload struct {
	UserID uuid.UUID
	Email  string
}

// AuthTokens is the transient result of issuing a token pair. It is returned
// to the client and never persisted.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // access token lifetime in seconds at issuance
}

// TokenService defines the interface for issuing and verifying the paired
// access/refresh tokens. The two domains are signed with independent secrets
// and validity windows and are never interchangeable.
type TokenService interface {
	// Issue signs the payload once per domain and returns the pair together
	// with the access token lifetime in seconds.
	Issue(payload *TokenPayload) (*AuthTokens, error)

	// VerifyAccess checks signature and expiry under the access domain.
	VerifyAccess(token string) (*TokenPayload, error)

	// VerifyRefresh checks signature and expiry under the refresh domain.
	VerifyRefresh(token string) (*TokenPayload, error)

	// Rotate verifies the refresh token, discards its temporal claims and
	// issues a wholly new pair. The previous refresh token remains valid
	// until its natural expiry; no revocation store exists.
	Rotate(refreshToken string) (*AuthTokens, error)
}
