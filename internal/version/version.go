package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via ldflags during build
var (
	// Version is the semantic version (e.g., v0.1.0)
	Version = "dev"

	// Commit is the git commit hash
	Commit = "unknown"

	// Date is the build date
	Date = "unknown"
)

// Name is the program name shown in version output and MCP handshakes
const Name = "pyformat"

// Short returns just the version string. Binaries installed with
// "go install" carry their module version instead of ldflags.
func Short() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// BuildDetails describes the running binary
type BuildDetails struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

// Details returns the build details of the running binary
func Details() BuildDetails {
	return BuildDetails{
		Name:     Name,
		Version:  Short(),
		Commit:   Commit,
		Date:     Date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Info returns version information as a formatted string
func Info() string {
	d := Details()
	return fmt.Sprintf("%s %s\nCommit: %s\nBuilt: %s\nGo: %s\nOS/Arch: %s",
		d.Name, d.Version, d.Commit, d.Date, d.Go, d.Platform)
}
