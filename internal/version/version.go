package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/alexiusacademia/gosfrc/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.3.0"
	BuildTime = "unknown"
	GitCommit = "unknown"

	Author = "Alexius Academia"
	Year   = "2026"
)

// Commit returns GitCommit, or the VCS revision recorded by the Go
// toolchain when the ldflag was not set.
func Commit() string {
	if GitCommit != "unknown" {
		return GitCommit
	}
	return vcsSetting("vcs.revision", GitCommit)
}

// Built returns BuildTime, or the VCS commit time when the ldflag was not set.
func Built() string {
	if BuildTime != "unknown" {
		return BuildTime
	}
	return vcsSetting("vcs.time", BuildTime)
}

// String is the one-line version shown by the CLI and the server.
func String() string {
	return fmt.Sprintf("gosfrc v%s (built %s, commit %s)", Version, Built(), Commit())
}

func vcsSetting(key, fallback string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fallback
	}
	for _, s := range info.Settings {
		if s.Key == key && s.Value != "" {
			if key == "vcs.revision" && len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return fallback
}
