package auth

import "golang.org/x/crypto/bcrypt"

// BcryptVerifier checks login passwords against stored bcrypt hashes.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// HashPassword is used by fixtures and onboarding tooling.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
