package version

import (
	"fmt"
	"runtime"
)

// Name is the program name reported by Info and UserAgent.
const Name = "crowelogic-gateway"

// Set at build time:
//
//	go build -ldflags "-X github.com/soyeahso/crowelogic-gateway/internal/version.Version=0.3.0
//	  -X github.com/soyeahso/crowelogic-gateway/internal/version.Commit=$(git rev-parse HEAD)
//	  -X github.com/soyeahso/crowelogic-gateway/internal/version.Date=$(date -u +%F)"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info returns the long version line printed by `crowelogic-gateway version`.
func Info() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s/%s)",
		Name, Version, short(Commit), Date, runtime.GOOS, runtime.GOARCH)
}

// UserAgent is sent by the HTTP client.
func UserAgent() string {
	return Name + "/" + Version
}

func short(s string) string {
	if len(s) > 7 {
		return s[:7]
	}
	return s
}
