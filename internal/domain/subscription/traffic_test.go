package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserInfo(t *testing.T) {
	info, err := ParseUserInfo("upload=1024; download=2048; total=10240; expire=1700000000")
	require.NoError(t, err)
	assert.Equal(t, Traffic{Upload: 1024, Download: 2048, Total: 10240}, info.Traffic)
	assert.Equal(t, int64(1700000000), info.ExpireAt)
	assert.True(t, info.HasExpiry)
}

func TestParseUserInfo_WithoutExpiry(t *testing.T) {
	info, err := ParseUserInfo("upload=0; download=0; total=1073741824; expire=")
	require.NoError(t, err)
	assert.Equal(t, int64(1073741824), info.Traffic.Total)
	assert.Zero(t, info.ExpireAt)
	assert.False(t, info.HasExpiry)
	assert.Equal(t, ExpiryUnknown, info.Expiry(testNow).Kind)
}

func TestUserInfo_ExpiryZeroEpoch(t *testing.T) {
	info, err := ParseUserInfo("upload=0; download=0; total=1024; expire=0")
	require.NoError(t, err)
	require.True(t, info.HasExpiry)

	e := info.Expiry(testNow)
	assert.Equal(t, ExpiryPast, e.Kind)
	assert.Equal(t, "此订阅已于`1970-01-01`过期！", e.Line())
}

func TestParseUserInfo_Invalid(t *testing.T) {
	for _, header := range []string{
		"",
		"upload=1; download=2",
		"upload=; download=; total=",
		"upload=99999999999999999999; download=1; total=2",
	} {
		_, err := ParseUserInfo(header)
		assert.ErrorIs(t, err, ErrNoTrafficInfo, header)
	}
}

func TestTraffic_Remaining(t *testing.T) {
	assert.Equal(t, int64(700), Traffic{Upload: 100, Download: 200, Total: 1000}.Remaining())
	assert.Equal(t, int64(-50), Traffic{Upload: 100, Download: 50, Total: 100}.Remaining())
}

func TestTraffic_FormatPercent(t *testing.T) {
	tests := []struct {
		name    string
		traffic Traffic
		want    string
	}{
		{"zero total", Traffic{Upload: 5, Download: 5, Total: 0}, "0"},
		{"quarter", Traffic{Upload: 100, Download: 150, Total: 1000}, "25.0"},
		{"third", Traffic{Upload: 1, Download: 0, Total: 3}, "33.33"},
		{"two thirds", Traffic{Upload: 1, Download: 1, Total: 3}, "66.67"},
		{"full", Traffic{Upload: 0, Download: 1000, Total: 1000}, "100.0"},
		{"half percent", Traffic{Upload: 5, Download: 0, Total: 1000}, "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.traffic.FormatPercent())
		})
	}
}

func TestTraffic_UsagePercent(t *testing.T) {
	assert.Equal(t, 0.0, Traffic{Total: 0}.UsagePercent())
	assert.Equal(t, 25.0, Traffic{Upload: 250, Total: 1000}.UsagePercent())
}
