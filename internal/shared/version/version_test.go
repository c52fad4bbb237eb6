package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "v1.2.3", Normalize("1.2.3"))
	assert.Equal(t, "v1.2.3", Normalize(" v1.2.3 "))
	assert.Equal(t, "dev", Normalize("dev"))
	assert.Equal(t, "", Normalize(""))
}

func TestInfo_String(t *testing.T) {
	info := Info{Version: "v0.3.0", Commit: "0123456789abcdef", GoVersion: "go1.24.3"}
	assert.Equal(t, "v0.3.0-0123456 (go1.24.3)", info.String())

	info.Commit = ""
	assert.Equal(t, "v0.3.0 (go1.24.3)", info.String())
}
