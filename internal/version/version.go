// Package version carries the storefront build metadata set via ldflags:
//
//	-X github.com/kailas-cloud/storefront/internal/version.Version=v1.2.0
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for startup logs and catalogctl.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
