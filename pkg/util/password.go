package util

import (
	"golang.org/x/crypto/bcrypt"
)

// custo acima do default do bcrypt; login não é caminho quente
const bcryptCost = 12

// HashPassword gera o hash bcrypt da senha em texto plano
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword compara a senha em texto plano com o hash armazenado
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
