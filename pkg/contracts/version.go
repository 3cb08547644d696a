// Package contracts carries the types shared across the API boundary:
// domain payloads, request schemas, and websocket event contracts.
package contracts

import (
	"fmt"
	"runtime"
)

// Version is the current application version.
const Version = "0.3.0"

// Set at build time via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo is the payload served by the version endpoint.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns detailed version information.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// GetVersionString returns a human-readable version line.
func GetVersionString() string {
	return fmt.Sprintf("BNI Tracker v%s", Version)
}
