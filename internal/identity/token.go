// Package identity issues and verifies access tokens. Callers only ever see
// the verified user id and role claim.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) Valid() bool { return r == RoleCustomer || r == RoleAdmin }

func (r Role) IsAdmin() bool { return r == RoleAdmin }

const (
	tokenType  = "Bearer"
	accessType = "access"
)

var ErrInvalidToken = apperr.Unauthorized("invalid or expired token")

// Claims is what a verified token tells the core.
type Claims struct {
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Token is the result of a successful authentication.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id"`
	Role        Role      `json:"role"`
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (Token, error)
}

// Verifier checks a raw token.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

type accessClaims struct {
	Role Role   `json:"role"`
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

type Gate struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewGate(secret, issuer string, ttl time.Duration) *Gate {
	return &Gate{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (g *Gate) Issue(userID string, role Role) (Token, error) {
	if userID == "" || !role.Valid() {
		return Token{}, apperr.Validation("cannot issue token without user id and role")
	}
	now := g.now()
	exp := now.Add(g.ttl)
	claims := accessClaims{
		Role: role,
		Type: accessType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    g.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return Token{}, apperr.Wrap(apperr.KindInternal, err, "sign token")
	}
	return Token{
		AccessToken: signed,
		TokenType:   tokenType,
		ExpiresAt:   exp.Truncate(time.Second),
		UserID:      userID,
		Role:        role,
	}, nil
}

func (g *Gate) Verify(raw string) (Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Claims{}, apperr.Unauthorized("missing token")
	}

	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(g.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, apperr.Unauthorized("token expired")
		}
		return Claims{}, ErrInvalidToken
	}
	if claims.Type != accessType || claims.Subject == "" || !claims.Role.Valid() {
		return Claims{}, ErrInvalidToken
	}
	return Claims{
		UserID:    claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
