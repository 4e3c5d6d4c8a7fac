// Package session validates the bearer tokens issued by the platform's auth
// service and turns them into dashboard sessions.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "tenantdash/pkg/domain"
	dErrors "tenantdash/pkg/domain-errors"
	"tenantdash/pkg/requestcontext"
)

// Claims mirrors the auth service's access token: the user in sub and the
// platform role in role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService validates and (for development tooling) issues HS256 session tokens.
type JWTService struct {
	signingKey []byte
	audience   string
	tokenTTL   time.Duration
}

func NewJWTService(signingKey, audience string, tokenTTL time.Duration) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		audience:   audience,
		tokenTTL:   tokenTTL,
	}
}

// ValidateToken checks signature, algorithm, expiry and audience, then
// extracts the session. Both sub and role are required.
func (s *JWTService) ValidateToken(tokenString string) (id.Session, error) {
	if tokenString == "" {
		return id.Session{}, dErrors.New(dErrors.CodeUnauthorized, "empty token")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.signingKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return id.Session{}, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return id.Session{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return id.Session{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	userID, err := id.ParseUserID(claims.Subject)
	if err != nil {
		return id.Session{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token subject")
	}
	if claims.Role == "" {
		return id.Session{}, dErrors.New(dErrors.CodeUnauthorized, "token has no role")
	}

	return id.Session{UserID: userID, Role: id.Role(claims.Role)}, nil
}

// Issue mints a session token. Production tokens come from the auth service;
// this exists for local tooling and tests.
func (s *JWTService) Issue(ctx context.Context, userID id.UserID, role id.Role) (string, error) {
	if userID.IsNil() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "user ID is required")
	}
	now := requestcontext.Now(ctx)

	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			ID:        uuid.NewString(),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}
