package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "trailing punctuation",
			text: "订阅 https://a.example/api/v1/client/subscribe?token=abc, 备用 http://b.example/x.",
			want: []string{"https://a.example/api/v1/client/subscribe?token=abc", "http://b.example/x"},
		},
		{
			name: "duplicates kept",
			text: "https://a.example/s https://a.example/s",
			want: []string{"https://a.example/s", "https://a.example/s"},
		},
		{
			name: "converter link",
			text: "https://sub.example/sub?target=clash&url=https%3A%2F%2Fa.example%2Fs&insert=false",
			want: []string{"https://sub.example/sub?target=clash&url=https%3A%2F%2Fa.example%2Fs&insert=false"},
		},
		{
			name: "none",
			text: "no links here ftp://x.example",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractURLs(tt.text))
		})
	}
}
