package plugin

import (
	"strings"
	"unicode"
)

// Invocation is a command line split into its parts.
type Invocation struct {
	Command    string
	Parameters []string
	Arguments  string
}

// ParseCommand recognises "<prefix><command>[@bot] args...". A command
// addressed to another bot is not an invocation.
func ParseCommand(text string, prefixes []string, botUsername string) (Invocation, bool) {
	var rest string
	matched := false
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(text, p) {
			rest = text[len(p):]
			matched = true
			break
		}
	}
	if !matched {
		return Invocation{}, false
	}

	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end < 0 {
		end = len(rest)
	}
	name, args := rest[:end], strings.TrimSpace(rest[end:])

	if at := strings.IndexByte(name, '@'); at >= 0 {
		if !strings.EqualFold(name[at+1:], botUsername) {
			return Invocation{}, false
		}
		name = name[:at]
	}
	if name == "" {
		return Invocation{}, false
	}

	return Invocation{
		Command:    strings.ToLower(name),
		Parameters: strings.Fields(args),
		Arguments:  args,
	}, true
}
