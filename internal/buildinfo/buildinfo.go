// Package buildinfo exposes build metadata injected at link time via
// -ldflags "-X gridline.opentransit.org/internal/buildinfo.Version=...".
package buildinfo

var (
	Branch        = "unknown"
	BuildTime     = "unknown"
	CommitHash    = "unknown"
	CommitMessage = "unknown"
	CommitTime    = "unknown"
	Dirty         = "unknown"
	Host          = "unknown"
	RemoteURL     = "unknown"
	UserEmail     = "unknown"
	UserName      = "unknown"
	Version       = "dev"
)
