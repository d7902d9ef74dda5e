// Package auth implements the console's cosmetic access gates: the demo
// login and the admin secret that guards device deletion. Neither is a real
// security mechanism; the verifier is an interface so a credential backend
// can be swapped in without touching the registry or dialog logic.
package auth

import "golang.org/x/crypto/bcrypt"

// Verifier checks a submitted secret. Implementations never return an error;
// a secret either matches or it does not.
type Verifier interface {
	Verify(secret string) bool
}

// StaticVerifier compares against a fixed shared secret, case-sensitive.
type StaticVerifier struct {
	secret string
}

// NewStaticVerifier creates a verifier over a fixed secret.
func NewStaticVerifier(secret string) *StaticVerifier {
	return &StaticVerifier{secret: secret}
}

// Verify reports whether the submitted secret matches exactly.
func (v *StaticVerifier) Verify(secret string) bool {
	return secret == v.secret
}

// BcryptVerifier compares against a bcrypt hash, for deployments that do not
// want the secret in a config file.
type BcryptVerifier struct {
	hash string
}

// NewBcryptVerifier creates a verifier over a bcrypt hash.
func NewBcryptVerifier(hash string) *BcryptVerifier {
	return &BcryptVerifier{hash: hash}
}

// Verify reports whether the submitted secret matches the hash.
func (v *BcryptVerifier) Verify(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(v.hash), []byte(secret)) == nil
}

// HashSecret produces a bcrypt hash suitable for BcryptVerifier.
func HashSecret(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
