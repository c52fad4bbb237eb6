// Package version exposes build metadata injected at link time.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Overridden with -ldflags "-X userbot/internal/shared/version.Current=...".
var (
	Current   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info is the JSON shape served by the version command and /healthz.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
}

// Get returns the build info, falling back to VCS settings embedded by the
// Go toolchain when Commit was not injected.
func Get() Info {
	info := Info{
		Version:   Normalize(Current),
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
	if info.Commit == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				switch s.Key {
				case "vcs.revision":
					info.Commit = s.Value
				case "vcs.time":
					if info.BuildTime == "" {
						info.BuildTime = s.Value
					}
				}
			}
		}
	}
	return info
}

// Normalize ensures a release version carries the "v" prefix.
// "1.2.3" -> "v1.2.3", "dev" stays "dev".
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" || version == "dev" {
		return version
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", i.Version, i.GoVersion)
	}
	return fmt.Sprintf("%s-%s (%s)", i.Version, commit, i.GoVersion)
}
