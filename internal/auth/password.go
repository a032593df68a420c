package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinCost is the lowest bcrypt cost HashPassword will use.
const MinCost = 10

// HashPassword returns a salted bcrypt hash of plain. Costs below MinCost are raised to MinCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < MinCost {
		cost = MinCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether plain matches hash. A malformed hash is an error;
// a plain mismatch is (false, nil).
func CheckPassword(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
