// Package buildinfo holds version information stamped in at link time.
//
//	go build -ldflags "-X github.com/altlinux/py3dephell/pkg/buildinfo.Version=v0.4.0 \
//	    -X github.com/altlinux/py3dephell/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/altlinux/py3dephell/pkg/buildinfo.Date=$(date -u +%Y-%m-%d)" \
//	    ./cmd/py3dephell
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns a multi-line description of the build.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", Version, Commit, Date, runtime.Version())
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", Version, Commit, Date)
}
