package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// shortCommitLen is the number of SHA characters kept from a VCS revision.
const shortCommitLen = 7

// Info holds structured build information suitable for JSON serialization.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// GetInfo returns the current build information as a structured type.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = withModuleInfo(info, bi)
	}
	return info
}

// withModuleInfo fills values still at their defaults from the toolchain's
// build information.
func withModuleInfo(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "dev" {
		if v := strings.TrimPrefix(bi.Main.Version, "v"); v != "" && v != "(devel)" {
			info.Version = v
		}
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" && s.Value != "" {
				info.Commit = s.Value[:min(len(s.Value), shortCommitLen)]
			}
		case "vcs.time":
			if info.Date == "unknown" && s.Value != "" {
				info.Date = s.Value
			}
		}
	}
	return info
}

// String returns a human-readable version string.
// Example: "wyclef v1.2.0 (commit: a1b2c3d, built: 2026-02-17T10:00:00Z)"
func (i Info) String() string {
	return fmt.Sprintf("wyclef v%s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}
