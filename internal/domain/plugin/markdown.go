package plugin

import "strings"

var markdownEscaper = strings.NewReplacer(
	`_`, `\_`,
	`*`, `\*`,
	"`", "\\`",
	`[`, `\[`,
)

// EscapeMarkdown escapes the Markdown (V1) special characters _ * ` [.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// Bold wraps s in Markdown bold after escaping it.
func Bold(s string) string {
	return "*" + EscapeMarkdown(s) + "*"
}

// Code wraps s in inline code. Backticks cannot be escaped inside code, so
// they are replaced with a prime.
func Code(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "′") + "`"
}
