// Package version reports the build version of the netatmo-weather tools.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// Set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/netatmo/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/netatmo/internal/version.Commit=abc1234"
//
// Unset values are filled from the module build info on first use.
var (
	Version = ""
	Commit  = ""
)

var resolveOnce sync.Once

func resolve() {
	resolveOnce.Do(func() {
		if info, ok := debug.ReadBuildInfo(); ok {
			fillFromBuildInfo(info)
		}
		if Version == "" {
			Version = "dev"
		}
		if Commit == "" {
			Commit = "unknown"
		}
	})
}

// fillFromBuildInfo uses the module version (set by `go install pkg@vX`) and
// the VCS stamp of a local build
func fillFromBuildInfo(info *debug.BuildInfo) {
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	if Commit != "" {
		return
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if modified {
		revision += "-dirty"
	}
	Commit = revision
}

// Full returns the version string including commit and Go version
func Full() string {
	resolve()
	return fmt.Sprintf("%s (commit: %s, %s)", Version, Commit, runtime.Version())
}

// UserAgent returns the User-Agent sent to the Netatmo API
func UserAgent() string {
	resolve()
	return "netatmo-weather/" + Version
}
