package validators

import "strings"

// NormalizePhone mantém só dígitos e um "+" inicial.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	for i, r := range phone {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhoneValid exige entre 10 e 13 dígitos (DDD + número, com ou sem DDI).
func IsPhoneValid(phone string) bool {
	digits := strings.TrimPrefix(NormalizePhone(phone), "+")
	return len(digits) >= 10 && len(digits) <= 13
}
