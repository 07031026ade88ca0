// Package auth holds the server's identity primitives: the access token
// codec, password hashing, request-context identity and the note ownership
// check.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the access token lifetime used when none is configured.
const DefaultTokenTTL = 20 * time.Minute

// Claims are the registered claims plus the identity the token vouches for.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// Identity is what a verified token resolves to.
type Identity struct {
	UserID string
	Email  string
}

// TokenCodec issues and verifies HS256-signed access tokens. The secret is
// fixed at construction and only read afterwards, so a codec may be shared
// by all request goroutines.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// CodecOption customises a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces time.Now, for tests that need to move time forward.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) { c.now = now }
}

// NewTokenCodec returns a codec signing with secretKey. A non-positive ttl
// falls back to DefaultTokenTTL.
func NewTokenCodec(secretKey string, ttl time.Duration, opts ...CodecOption) (*TokenCodec, error) {
	if secretKey == "" {
		return nil, errors.New("token codec: empty secret key")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	c := &TokenCodec{secret: []byte(secretKey), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL returns the lifetime of tokens produced by Issue.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the user with the codec's default lifetime.
func (c *TokenCodec) Issue(userID, email string) (string, error) {
	return c.IssueWithTTL(userID, email, c.ttl)
}

// IssueWithTTL signs a token for the user expiring ttl from now. A zero ttl
// yields a token that is already expired.
func (c *TokenCodec) IssueWithTTL(userID, email string, ttl time.Duration) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Email:  email,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks the signature, algorithm and expiry of tokenString and
// returns the identity it carries. Every failure wraps
// common.ErrInvalidToken; expired tokens additionally wrap
// common.ErrTokenExpired.
func (c *TokenCodec) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
