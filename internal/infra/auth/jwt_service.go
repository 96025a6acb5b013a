// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"passport/config"
	"passport/internal/domain/service"
	"passport/internal/errors"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// tokenClaims is the wire format of both token domains. The type claim keeps
// the domains apart even if the two secrets were ever configured identically.
type tokenClaims struct {
	Email string `json:"email"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access and refresh tokens are signed with independent secrets and validity windows.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	accessTTL := defaultAccessTTL
	refreshTTL := defaultRefreshTTL
	if cfg.Token != nil {
		if cfg.Token.AccessTTL != 0 {
			accessTTL = cfg.Token.AccessTTL
		}
		if cfg.Token.RefreshTTL != 0 {
			refreshTTL = cfg.Token.RefreshTTL
		}
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// Issue signs the payload once per domain and returns the pair together with
// the access token lifetime in seconds.
func (s *jwtService) Issue(payload *service.TokenPayload) (*service.AuthTokens, error) {
	accessToken, err := s.sign(payload, tokenTypeAccess, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, errors.Wrap(err, "sign access token")
	}

	refreshToken, err := s.sign(payload, tokenTypeRefresh, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, "sign refresh token")
	}

	return &service.AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// VerifyAccess checks the token under the access domain. Failures satisfy
// service.ErrAccessTokenInvalid; expired tokens additionally satisfy
// service.ErrTokenExpired.
func (s *jwtService) VerifyAccess(token string) (*service.TokenPayload, error) {
	payload, err := s.verify(token, s.accessSecret, tokenTypeAccess)
	if err != nil {
		return nil, reject(service.ErrAccessTokenInvalid, err)
	}

	return payload, nil
}

// VerifyRefresh checks the token under the refresh domain.
func (s *jwtService) VerifyRefresh(token string) (*service.TokenPayload, error) {
	payload, err := s.verify(token, s.refreshSecret, tokenTypeRefresh)
	if err != nil {
		return nil, reject(service.ErrRefreshTokenInvalid, err)
	}

	return payload, nil
}

// Rotate verifies the refresh token, drops its temporal claims and issues a
// wholly new pair. The old refresh token stays valid until its own expiry;
// tokens are self-contained and no revocation store exists.
func (s *jwtService) Rotate(refreshToken string) (*service.AuthTokens, error) {
	payload, err := s.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	return s.Issue(payload)
}

// sign creates a JWT for one domain with its own secret and expiry.
func (s *jwtService) sign(payload *service.TokenPayload, tokenType, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &tokenClaims{
		Email: payload.Email,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// verify parses and validates a token string against a domain secret and
// expected type claim.
func (s *jwtService) verify(tokenString, secret, wantType string) (*service.TokenPayload, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{},
		func(token *jwt.Token) (any, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("unexpected token claims")
	}

	if claims.Type != wantType {
		return nil, errors.Errorf("token type %q does not match domain %q", claims.Type, wantType)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "parse subject claim")
	}

	return &service.TokenPayload{
		UserID: userID,
		Email:  claims.Email,
	}, nil
}

// reject maps an internal verification failure onto the domain sentinel,
// preserving the expired distinction for callers that inspect it.
func reject(sentinel, cause error) error {
	if errors.Is(cause, jwt.ErrTokenExpired) {
		return errors.Join(sentinel, service.ErrTokenExpired)
	}

	return sentinel
}
