package env

// Build metadata, set through -ldflags at release time.
var (
	AppName    = "mp3probe"
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
