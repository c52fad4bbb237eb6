package subscription

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0.000 B"},
		{1, "1.000 B"},
		{1023, "1023.000 B"},
		{1024, "1.000 KB"},
		{1536, "1.512 KB"},
		{1024*1024 + 5*1024, "1.005 MB"},
		{10 * 1024 * 1024 * 1024, "10.000 GB"},
		{1 << 60, "1024.000 PB"},
		{-5, "0.000 B"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.size), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSize(tt.size))
		})
	}
}

func TestFormatSize_Reconstructs(t *testing.T) {
	levels := map[string]int{"B": 0, "KB": 1, "MB": 2, "GB": 3, "TB": 4, "PB": 5}

	for _, n := range []int64{0, 7, 1023, 1025, 123456, 987654321, 5 << 40, 3<<50 + 12345} {
		var q, r int64
		var unit string
		_, err := fmt.Sscanf(FormatSize(n), "%d.%d %s", &q, &r, &unit)
		require.NoError(t, err)

		level, ok := levels[unit]
		require.True(t, ok, unit)
		if level == 0 {
			assert.Equal(t, n, q)
			continue
		}

		step := int64(1) << (10 * (level - 1))
		low := (q*1024 + r) * step
		assert.LessOrEqual(t, low, n)
		assert.Less(t, n, low+step)
	}
}
