// redact маскирует чувствительные значения перед записью в логи.
package redact

import "strings"

// Email маскирует локальную часть адреса, сохраняя домен.
// Любая строка, не похожая на e-mail, схлопывается в "***".
func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := []rune(parts[0]), parts[1]
	if len(local) > 2 {
		return string(local[:2]) + "***@" + domain
	}

	return "***@" + domain
}

func Token() string    { return "[REDACTED_TOKEN]" }
func Password() string { return "[REDACTED_PASSWORD]" }
