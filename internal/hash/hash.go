package hash

import "golang.org/x/crypto/bcrypt"

// Password hashes the plaintext with a per-call random salt. Two hashes of the
// same plaintext differ, but both verify.
func Password(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plaintext matches the stored hash. Malformed
// hashes fail closed. The underlying comparison is constant-time.
func CheckPassword(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
