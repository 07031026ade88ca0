package auth

import (
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and checks passwords with bcrypt.
type PasswordHasher struct {
	cost  int
	dummy []byte
}

// NewPasswordHasher returns a hasher with the given bcrypt cost, raised to
// common.MinPasswordHashCost if lower.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < common.MinPasswordHashCost {
		cost = common.MinPasswordHashCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	// 32 random bytes at a clamped cost cannot make GenerateFromPassword fail.
	dummy, _ := bcrypt.GenerateFromPassword(common.GenerateRandByteArray(32), cost)
	return &PasswordHasher{cost: cost, dummy: dummy}
}

// Cost returns the bcrypt work factor in use.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash returns a salted bcrypt hash of password. Two calls with the same
// password return different hashes.
func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether password matches hash, in constant time.
func (h *PasswordHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CompareDummy spends the same work as Compare against a fixed hash and
// always reports false. Login calls it for unknown emails so response time
// does not reveal whether an account exists.
func (h *PasswordHasher) CompareDummy(password string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
	return false
}
