// Package version exposes the build metadata stamped into the mimic
// binary. Source builds without ldflags report the development defaults.
package version

import (
	"fmt"
	"runtime"
)

// Stamped at build time:
//
//	go build -ldflags "\
//	  -X github.com/teranos/mimic/version.Version=v1.2.3 \
//	  -X github.com/teranos/mimic/version.CommitHash=$(git rev-parse HEAD) \
//	  -X github.com/teranos/mimic/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version    = "dev"
	CommitHash = "dev"
	BuildTime  = "unknown"
)

// Info is a snapshot of the build metadata, serializable for
// `mimic version --json`.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the running binary's build info.
func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the one-line form the version command prints.
func (i Info) String() string {
	return fmt.Sprintf("mimic %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
