package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"crediasesor-backoffice/internal/domain/permission"
	"crediasesor-backoffice/pkg/id"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const (
	audAccess  = "access"
	audRefresh = "refresh"
)

// Claims: sub is the user id.
type Claims struct {
	Role permission.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject back into a user id.
func (c *Claims) UserID() (uint64, error) {
	n, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return n, nil
}

type Tokens struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokens(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Tokens {
	if refreshSecret == "" {
		refreshSecret = accessSecret
	}
	return &Tokens{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (t *Tokens) AccessTTL() time.Duration  { return t.accessTTL }
func (t *Tokens) RefreshTTL() time.Duration { return t.refreshTTL }

func (t *Tokens) sign(secret []byte, aud string, userID uint64, role permission.Role, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			Audience:  jwt.ClaimStrings{aud},
			ID:        id.NewID32(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func (t *Tokens) IssueAccess(userID uint64, role permission.Role) (string, error) {
	return t.sign(t.accessSecret, audAccess, userID, role, t.accessTTL)
}

// IssueRefresh carries no role; it only proves who the session belongs to.
func (t *Tokens) IssueRefresh(userID uint64) (string, error) {
	return t.sign(t.refreshSecret, audRefresh, userID, "", t.refreshTTL)
}

// parse also pins the audience so a refresh token never passes as an access
// token when both secrets are the same.
func (t *Tokens) parse(secret []byte, aud, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
		jwt.WithAudience(aud),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

func (t *Tokens) ParseAccess(raw string) (*Claims, error)  { return t.parse(t.accessSecret, audAccess, raw) }
func (t *Tokens) ParseRefresh(raw string) (*Claims, error) { return t.parse(t.refreshSecret, audRefresh, raw) }
