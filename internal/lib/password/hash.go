// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// Пароль сначала сворачивается SHA-256 и кодируется base64 (44 байта), и только
// затем передаётся в bcrypt. Так bcrypt никогда не обрезает вход длиннее 72 байт.
// Хэши в формате чистого bcrypt (без префикса) по-прежнему проверяются, но для них
// пароль длиннее 72 байт отклоняется явной ошибкой.
package password

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	prefix = "bcrypt-sha256$"

	// MaxLegacyLength предел длины пароля для хэшей чистого bcrypt.
	MaxLegacyLength = 72
)

var (
	// ErrMismatch пароль не соответствует хэшу.
	ErrMismatch = errors.New("password does not match")
	// ErrTooLong пароль длиннее, чем допускает чистый bcrypt-хэш.
	ErrTooLong = errors.New("password is longer than 72 bytes")
	// ErrInvalidHash хэш в неизвестном формате.
	ErrInvalidHash = errors.New("invalid password hash")
)

// Hasher хэширует пароли с заданной стоимостью bcrypt.
type Hasher struct {
	cost int
}

// NewHasher создаёт Hasher. Стоимость вне диапазона bcrypt заменяется на bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// GetHash принимает пароль пользователя и возвращает его хэш для хранения в базе данных.
func (h *Hasher) GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashed, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return prefix + string(hashed), nil
}

// CompareHash сравнивает сохранённый хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, ErrMismatch при несовпадении.
func (h *Hasher) CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"

	var secret []byte
	stored := originalHash
	switch {
	case strings.HasPrefix(originalHash, prefix):
		stored = strings.TrimPrefix(originalHash, prefix)
		secret = prehash(externalPassword)
	case strings.HasPrefix(originalHash, "$2"):
		if len(externalPassword) > MaxLegacyLength {
			return fmt.Errorf("%s: %w", op, ErrTooLong)
		}
		secret = []byte(externalPassword)
	default:
		return fmt.Errorf("%s: %w", op, ErrInvalidHash)
	}

	err := bcrypt.CompareHashAndPassword([]byte(stored), secret)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
