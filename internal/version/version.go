package version

// Set at build time via -ldflags.
var (
	AppName   = "sounddeck"
	Version   = "dev"
	BuildDate = "unknown"
)
