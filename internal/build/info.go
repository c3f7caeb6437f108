// Package build exposes build-time metadata injected via ldflags.
package build

import (
	"fmt"
	"runtime"
)

// Version, Commit, and Date are set at build time by:
//
//	-ldflags "-X github.com/joestump/bookmarks-api/internal/build.Version=... ..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata on one line.
func String() string {
	return fmt.Sprintf("bookmarks %s (commit %s, built %s, %s)", Version, Commit, Date, runtime.Version())
}
