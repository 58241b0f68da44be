// Package buildinfo holds the version metadata stamped in at link time.
package buildinfo

var (
	// Version is the release tag, set via -ldflags at build time.
	Version = "dev"
	// Commit is the VCS commit hash, set via -ldflags at build time.
	Commit = "unknown"
	// Date is the build timestamp, set via -ldflags at build time.
	Date = "unknown"
)

// String renders the three fields as a single human-readable line.
func String() string {
	return Version + " (" + Commit + ", built " + Date + ")"
}
