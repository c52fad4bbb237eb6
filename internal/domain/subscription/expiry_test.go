package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Unix(1700000000, 0)

func TestNewExpiry(t *testing.T) {
	future := NewExpiry(testNow.Unix()+90000, testNow)
	assert.Equal(t, ExpiryFuture, future.Kind)
	assert.Equal(t, 25*time.Hour, future.Remaining)
	assert.Equal(t, "此订阅将于`2023-11-16`过期，剩余`01天01小时`", future.Line())

	past := NewExpiry(1600000000, testNow)
	assert.Equal(t, ExpiryPast, past.Kind)
	assert.Equal(t, "此订阅已于`2020-09-13`过期！", past.Line())

	epochZero := NewExpiry(0, testNow)
	assert.Equal(t, ExpiryPast, epochZero.Kind)
	assert.Equal(t, "此订阅已于`1970-01-01`过期！", epochZero.Line())

	assert.Equal(t, "到期时间：`未知`", Expiry{Kind: ExpiryUnknown}.Line())
}

func TestNewExpiry_ExactlyNowIsFuture(t *testing.T) {
	e := NewExpiry(testNow.Unix(), testNow)
	assert.Equal(t, ExpiryFuture, e.Kind)
	assert.Contains(t, e.Line(), "剩余`00天00小时`")
}

func TestExpiry_DateUsesUTC8(t *testing.T) {
	// 2024-01-01 16:00:00 UTC is already the 2nd in UTC+8.
	e := NewExpiry(time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC).Unix(), testNow)
	assert.Equal(t, "2024-01-02", e.Date())
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "00天00小时", FormatRemaining(0))
	assert.Equal(t, "00天05小时", FormatRemaining(5*time.Hour+59*time.Minute))
	assert.Equal(t, "03天23小时", FormatRemaining(95*time.Hour))
	assert.Equal(t, "400天00小时", FormatRemaining(400*24*time.Hour))
}
