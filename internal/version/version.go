package version

// Version is the application version. Override via ldflags:
//
//	go build -ldflags "-X torreport/internal/version.Version=1.2.3 -X torreport/internal/version.Build=42"
var Version = "0.0.1"

// Build is the build number, injected at compile time.
var Build = "dev"
