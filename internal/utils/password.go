package utils

import (
	"crypto/rand"
	"math/big"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword retorna o hash bcrypt da senha em texto
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword compara hash bcrypt com a senha em texto e retorna true se bater
func CheckPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

var dummyHash = sync.OnceValue(func() string {
	hash, _ := HashPassword("placeholder-for-unknown-accounts")
	return hash
})

// DummyPasswordHash é um hash bcrypt de custo padrão usado no login de
// e-mails inexistentes, para o tempo de resposta não revelar a conta.
func DummyPasswordHash() string {
	return dummyHash()
}

// GenerateTemporaryPassword gera uma senha aleatória de n caracteres.
func GenerateTemporaryPassword(n int) (string, error) {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, n)
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", err
		}
		result[i] = chars[num.Int64()]
	}
	return string(result), nil
}
