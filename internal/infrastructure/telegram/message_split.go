package telegram

import (
	"strings"
	"unicode/utf8"
)

// maxMessageLength is Telegram's text limit, counted in runes.
const maxMessageLength = 4096

// splitMessage cuts text into chunks of at most limit runes, preferring to
// cut after a blank line, then after a newline, then anywhere.
func splitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = maxMessageLength
	}

	var chunks []string
	for utf8.RuneCountInString(text) > limit {
		window := text[:runeByteOffset(text, limit)]

		cut := len(window)
		if idx := strings.LastIndex(window, "\n\n"); idx > 0 {
			cut = idx + 2
		} else if idx := strings.LastIndexByte(window, '\n'); idx > 0 {
			cut = idx + 1
		}

		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	if text != "" || len(chunks) == 0 {
		chunks = append(chunks, text)
	}
	return chunks
}

// runeByteOffset returns the byte offset of the n-th rune in s, or len(s).
func runeByteOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
