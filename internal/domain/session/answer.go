package session

import (
	"strings"
	"unicode"
)

// answerDigits оставляет только цифры ответа и убирает ведущие нули:
// "вариант 2" -> "2", "02" -> "2", "1, 3" -> "13"
func answerDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" && digits != "" {
		return "0"
	}
	return trimmed
}

// answerMatches сравнивает цифры ответа с цифрами правильного ответа с учетом порядка
func answerMatches(submitted, correct string) bool {
	return answerDigits(submitted) == answerDigits(correct)
}
