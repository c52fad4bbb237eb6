package utils

import "strings"

// MaskToken keeps the bot id part of a Bot API token for logging.
// Example: "123456:AAH-secret" -> "123456:***"
func MaskToken(token string) string {
	id, _, ok := strings.Cut(token, ":")
	if !ok || id == "" {
		return "***"
	}
	return id + ":***"
}

// TruncateForLog truncates s to maxLen bytes and marks the cut with "...".
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
