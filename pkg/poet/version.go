package poet

import "github.com/heartbeats/poet-go/internal/bindings"

var (
	// Version is the wrapper's semantic version, populated at build time via
	// ldflags. In development it defaults to v0.0.0-dev.
	Version = "v0.0.0-dev"

	// UpstreamSHA is the libpoet commit the cgo layer was written against.
	UpstreamSHA = "unknown"
)

// WrapperVersion returns the wrapper's own version.
func WrapperVersion() string {
	return Version
}

// UpstreamVersion returns the version reported by the native library when it
// exports one, falling back to the pinned upstream commit.
func UpstreamVersion() string {
	if v := bindings.Version(); v != "" {
		return v
	}
	return UpstreamSHA
}

// NativeAvailable reports whether the native bindings are linked into this
// binary. When false, Open and the native loaders return ErrNotBuilt.
func NativeAvailable() bool {
	return bindings.Built()
}
