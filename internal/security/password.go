// security содержит работу с паролями: одностороннее хэширование
// и проверку пароля по хэшу.
package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword хэширует пароль с помощью bcrypt (соль включена в дайджест).
func HashPassword(password string) (string, error) {
	const op = "security.HashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// CheckPassword сравнивает пароль с хэшем.
// Любой некорректный дайджест даёт false — ошибка наружу не отдается,
// чтобы ответ не зависел от причины несовпадения.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
