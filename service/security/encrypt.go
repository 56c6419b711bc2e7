package security

import "golang.org/x/crypto/bcrypt"

// Methods to hash passwords using bcrypt
func BcryptHash(str string) (string, error) {
	// Use bcrypt to hash the password
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(str), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Method to compare a bcrypt hashed password with a plain text password
func BcryptCompare(hashedStr, plainStr string) bool {
	// Compare the hashed password with the plain text password
	err := bcrypt.CompareHashAndPassword([]byte(hashedStr), []byte(plainStr))
	return err == nil
}

// BcryptScheme plugs bcrypt into the chat directory as its secret scheme.
// The directory's default stores secrets verbatim; enable this one with
// HASH_SECRETS=true.
type BcryptScheme struct{}

func (BcryptScheme) Seal(secret string) (string, error) {
	return BcryptHash(secret)
}

func (BcryptScheme) Compare(sealed, secret string) bool {
	return BcryptCompare(sealed, secret)
}
