package service

import (
	"time"

	"github.com/fluxur/backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

const adminRole = "admin"

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminAuth checks HS256 bearer tokens for the pool administration routes.
// With no secret configured every token is rejected.
type AdminAuth struct {
	secret []byte
	now    func() time.Time
}

func NewAdminAuth(cfg config.AdminConfig) *AdminAuth {
	return &AdminAuth{secret: []byte(cfg.JWTSecret), now: time.Now}
}

func (a *AdminAuth) Enabled() bool {
	return len(a.secret) > 0
}

// ParseToken returns the token subject when it carries the admin role.
func (a *AdminAuth) ParseToken(tokenStr string) (string, error) {
	if !a.Enabled() || tokenStr == "" {
		return "", ErrUnauthorized
	}

	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}
	if claims.Role != adminRole {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}

// IssueToken mints an admin token for subject, valid for ttl.
func (a *AdminAuth) IssueToken(subject string, ttl time.Duration) (string, error) {
	if !a.Enabled() {
		return "", ErrMisconfigured
	}
	now := a.now()
	claims := adminClaims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}
