package env

import "strings"

// RedactValue masks a secret, showing only the first 4 and last 4 characters.
func RedactValue(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}

// RedactAll masks every secret in the slice.
func RedactAll(secrets []string) []string {
	out := make([]string, len(secrets))
	for i, s := range secrets {
		out[i] = RedactValue(s)
	}
	return out
}
