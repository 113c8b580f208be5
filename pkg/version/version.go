// Package version exposes build-time version metadata for the tsxmod binary.
package version

import "runtime/debug"

// Build metadata, overridable at link time:
//
//	go build -ldflags "-X github.com/tsxmod/tsxmod/pkg/version.Version=v1.2.3"
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the VCS revision the binary was built from.
	Commit = "unknown"

	// Date is the build timestamp in RFC 3339 format.
	Date = "unknown"
)

// InitBinaryVersion fills unset metadata from the embedded build info.
// Link-time values take precedence.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == "unknown" {
				Commit = setting.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = setting.Value
			}
		}
	}
}
