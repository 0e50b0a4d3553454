package otp

import "strings"

// MaskRecipient возвращает замаскированную форму email для отображения
// Правило детерминировано: первые два символа локальной части (один,
// если она короче), затем "***" и полный домен
// Например, "jane.doe@example.com" -> "ja***@example.com"
func MaskRecipient(email string) (string, error) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", ErrInvalidRecipient
	}

	local := email[:at]
	domain := email[at+1:]

	visible := 2
	if len(local) < visible {
		visible = 1
	}

	return local[:visible] + "***@" + domain, nil
}
