package subscription

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Clash(t *testing.T) {
	body := []byte(`
port: 7890
proxies:
  - {name: "HK-01", type: Trojan, server: a.example, port: 443}
  - {name: "US-02", type: trojan, server: b.example, port: 443}
`)

	stats, err := Aggregate(body)
	require.NoError(t, err)
	assert.True(t, stats.CountKnown)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, []Count{{Name: "trojan", Count: 2}}, stats.Types)
	assert.Equal(t, []Count{{Name: "香港", Count: 1}, {Name: "美国", Count: 1}}, stats.Regions)
}

func TestAggregate_ClashKeepsFirstSeenOrder(t *testing.T) {
	body := []byte(`proxies:
  - name: "🇺🇸 Los Angeles"
    type: ss
  - name: "🇭🇰 Hong Kong"
    type: vmess
  - name: "🇺🇸 Seattle"
    type: ss
  - name: "Relay"
    type: ""
`)

	stats, err := Aggregate(body)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, []Count{{Name: "ss", Count: 2}, {Name: "vmess", Count: 1}}, stats.Types)
	assert.Equal(t, []Count{{Name: "美国", Count: 2}, {Name: "香港", Count: 1}}, stats.Regions)
}

func TestAggregate_ClashEmptyProxies(t *testing.T) {
	stats, err := Aggregate([]byte("proxies: []\n"))
	require.NoError(t, err)
	assert.True(t, stats.CountKnown)
	assert.Zero(t, stats.Count)
	assert.Empty(t, stats.Types)
}

func TestAggregate_EncodedList(t *testing.T) {
	body := base64.StdEncoding.EncodeToString([]byte("vmess://Zm9v\nss://bar\n\nunknown://x\n"))

	stats, err := Aggregate([]byte(body))
	require.NoError(t, err)
	assert.True(t, stats.CountKnown)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, []Count{{Name: "vmess", Count: 1}, {Name: "ss", Count: 1}}, stats.Types)
	assert.Empty(t, stats.Regions)
}

func TestAggregate_EncodedListScansUnrecognisedLines(t *testing.T) {
	body := base64.StdEncoding.EncodeToString([]byte("trojan://p@h:443#%E6%97%A5%E6%9C%AC\nunknown://香港-relay\n"))

	stats, err := Aggregate([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, []Count{{Name: "trojan", Count: 1}}, stats.Types)
	assert.Equal(t, []Count{{Name: "香港", Count: 1}}, stats.Regions)
}

func TestAggregate_EncodedListDecodesVMessPayload(t *testing.T) {
	vmess := "vmess://" + base64.StdEncoding.EncodeToString([]byte(`{"ps":"日本 01"}`))
	ssr := "ssr://" + base64.RawURLEncoding.EncodeToString([]byte("1.2.3.4:443:origin:aes-256-cfb:plain:cGFzcw/?remarks=新加坡"))
	list := strings.Join([]string{vmess, ssr, "hy2://pw@host:443#Tokyo", "hysteria://host:443", "hy://host:443"}, "\r\n")

	stats, err := Aggregate([]byte(base64.StdEncoding.EncodeToString([]byte(list))))
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Count)
	assert.Equal(t, []Count{
		{Name: "vmess", Count: 1},
		{Name: "ssr", Count: 1},
		{Name: "hy2", Count: 1},
		{Name: "hysteria", Count: 1},
		{Name: "hy", Count: 1},
	}, stats.Types)
	assert.Equal(t, []Count{{Name: "日本", Count: 1}, {Name: "新加坡", Count: 1}}, stats.Regions)
}

func TestAggregate_EncodedListTypesFollowSchemeOrder(t *testing.T) {
	list := "vless://a@h:1\nss://b@h:2\nvmess://e30=\nss://c@h:3\n"
	stats, err := Aggregate([]byte(base64.StdEncoding.EncodeToString([]byte(list))))
	require.NoError(t, err)
	assert.Equal(t, []Count{
		{Name: "vmess", Count: 1},
		{Name: "ss", Count: 2},
		{Name: "vless", Count: 1},
	}, stats.Types)
}

func TestAggregate_LenientBase64(t *testing.T) {
	encoded := base64.RawStdEncoding.EncodeToString([]byte("ss://a@h:1\nss://b@h:2"))
	wrapped := encoded[:10] + "\n" + encoded[10:] + "\n"

	stats, err := Aggregate([]byte(wrapped))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
}

func TestAggregate_EncodedListWithoutNodes(t *testing.T) {
	stats, err := Aggregate([]byte(base64.StdEncoding.EncodeToString([]byte("hello world"))))
	require.NoError(t, err)
	assert.False(t, stats.CountKnown)
	assert.Equal(t, MsgUnknown, stats.CountText())
}

func TestAggregate_Unparseable(t *testing.T) {
	for _, body := range []string{
		"<html><body>not found</body></html>",
		"@@@ not base64 @@@",
		base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd}),
	} {
		_, err := Aggregate([]byte(body))
		assert.ErrorIs(t, err, ErrUnparseableBody, body)
	}
}
