package subscription

import (
	"encoding/base64"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Aggregate classifies a subscription body. A YAML mapping with a proxies
// sequence is read as a Clash config; otherwise the body must be base64 of a
// newline separated node list.
func Aggregate(body []byte) (*NodeStats, error) {
	if proxies, ok := clashProxies(body); ok {
		return aggregateClash(proxies), nil
	}
	text, ok := decodeBase64Text(string(body))
	if !ok {
		return nil, ErrUnparseableBody
	}
	return aggregateEncoded(text), nil
}

func clashProxies(body []byte) ([]any, bool) {
	var doc map[string]any
	if err := yaml.Unmarshal(body, &doc); err != nil || doc == nil {
		return nil, false
	}
	proxies, ok := doc["proxies"].([]any)
	return proxies, ok
}

func aggregateClash(proxies []any) *NodeStats {
	types := newCounter()
	regions := newCounter()

	for _, entry := range proxies {
		proxy, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if t := strings.ToLower(stringField(proxy, "type")); t != "" {
			types.add(t)
		}
		if region, ok := MatchRegion(stringField(proxy, "name")); ok {
			regions.add(region)
		}
	}

	return &NodeStats{
		Count:      len(proxies),
		CountKnown: true,
		Types:      types.counts(),
		Regions:    regions.counts(),
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func aggregateEncoded(text string) *NodeStats {
	schemes := newCounter()
	regions := newCounter()
	nodes := 0

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		scanned := line
		if scheme, ok := MatchScheme(line); ok {
			nodes++
			schemes.add(scheme.String())
			if scheme.hasEncodedPayload() {
				if decoded, ok := decodeBase64Text(line[len(scheme.Prefix()):]); ok {
					scanned = decoded
				}
			}
		}

		if region, ok := MatchRegion(scanned); ok {
			regions.add(region)
		}
	}

	types := lo.FilterMap(Schemes(), func(s ProtocolScheme, _ int) (Count, bool) {
		n := schemes.get(s.String())
		return Count{Name: s.String(), Count: n}, n > 0
	})

	return &NodeStats{
		Count:      nodes,
		CountKnown: nodes > 0,
		Types:      types,
		Regions:    regions.counts(),
	}
}

var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// decodeBase64Text accepts padded or unpadded, standard or URL-safe base64
// with embedded whitespace, and requires the result to be valid UTF-8.
func decodeBase64Text(s string) (string, bool) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	for _, enc := range base64Encodings {
		decoded, err := enc.DecodeString(compact)
		if err == nil && utf8.Valid(decoded) {
			return string(decoded), true
		}
	}
	return "", false
}
