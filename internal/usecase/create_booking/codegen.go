package create_booking

import (
	"crypto/rand"
	"math/big"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Максимальное число попыток вставки при конфликте уникального кода
// Конфликт практически невозможен (31^8 вариантов), но обрабатывается явно
const maxCodeAttempts = 5

// generateUniqueCode генерирует публичный код бронирования
// Алфавит без неоднозначных символов, длина domain.UniqueCodeLength
func generateUniqueCode() (string, error) {
	alphabetLen := big.NewInt(int64(len(domain.UniqueCodeAlphabet)))

	code := make([]byte, domain.UniqueCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		code[i] = domain.UniqueCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}
