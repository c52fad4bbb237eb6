package subscription

import (
	"slices"
	"strings"
)

// ProtocolScheme is a node URI scheme recognised in encoded node lists.
type ProtocolScheme string

const (
	SchemeVMess    ProtocolScheme = "vmess"
	SchemeSS       ProtocolScheme = "ss"
	SchemeSSR      ProtocolScheme = "ssr"
	SchemeTrojan   ProtocolScheme = "trojan"
	SchemeVLESS    ProtocolScheme = "vless"
	SchemeHy2      ProtocolScheme = "hy2"
	SchemeHysteria ProtocolScheme = "hysteria"
	SchemeHy       ProtocolScheme = "hy"
)

// schemeOrder is both the prefix test order and the report order.
var schemeOrder = [...]ProtocolScheme{
	SchemeVMess,
	SchemeSS,
	SchemeSSR,
	SchemeTrojan,
	SchemeVLESS,
	SchemeHy2,
	SchemeHysteria,
	SchemeHy,
}

// Schemes returns a copy of the schemes in their fixed order.
func Schemes() []ProtocolScheme {
	return slices.Clone(schemeOrder[:])
}

func (s ProtocolScheme) String() string {
	return string(s)
}

// Prefix returns the URI prefix, e.g. "vmess://".
func (s ProtocolScheme) Prefix() string {
	return string(s) + "://"
}

// hasEncodedPayload reports whether the part after the prefix is itself
// base64 text carrying the node name.
func (s ProtocolScheme) hasEncodedPayload() bool {
	return s == SchemeVMess || s == SchemeSSR
}

// MatchScheme returns the first scheme whose prefix starts line.
func MatchScheme(line string) (ProtocolScheme, bool) {
	for _, s := range schemeOrder {
		if strings.HasPrefix(line, s.Prefix()) {
			return s, true
		}
	}
	return "", false
}
