package wizard

import "strings"

// 16 digits plus three separators keeps the formatted value at 19 characters.
const maxCardDigits = 16

// FormatCardNumber normalizes raw card input into space-separated groups of
// four digits. Non-digits are dropped and anything past 16 digits is cut, so
// feeding its own output back in is a no-op.
func FormatCardNumber(raw string) string {
	digits := digitsOnly(raw, maxCardDigits)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiryDate normalizes raw expiry input into MM/YY. The slash is
// inserted once a third digit arrives; re-formatting already formatted input
// leaves it unchanged.
func FormatExpiryDate(raw string) string {
	digits := digitsOnly(raw, 4)
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

func digitsOnly(raw string, max int) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == max {
			break
		}
	}
	return b.String()
}
