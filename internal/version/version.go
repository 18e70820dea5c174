// internal/version/version.go
package version

// Version is the release string reported by --version.
// Overridable at build time: -ldflags "-X mea/internal/version.Version=...".
var Version = "0.1.0"
