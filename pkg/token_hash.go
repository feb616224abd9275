package pkg

import "golang.org/x/crypto/bcrypt"

// TokenHashCost is lower than a login password cost: the hash is checked on every write request.
const TokenHashCost = 10

func HashToken(token string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(token), TokenHashCost)
	return BytesToString(bytes), err
}

func CheckTokenHash(token, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
