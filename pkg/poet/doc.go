// Package poet provides memory-safe Go bindings for POET, the Performance
// with Optimal Energy Tradeoffs runtime controller.
//
// POET observes an application's heartbeat rate and power draw over fixed
// windows and picks the platform configuration (DVFS frequency, active core
// count) that meets a performance goal at minimum energy cost. The native
// library is driven through three calls: construct a controller, feed it one
// observation per window, and destroy it.
//
// # Ownership
//
// A State owns exactly one native poet_state. It is move-only: the struct
// embeds a mutex, so go vet's copylocks check rejects copies, and sharing a
// *State across goroutines is safe only in the sense that methods serialize —
// libpoet itself is single-threaded per controller. Close releases the native
// resource exactly once and is a no-op afterwards.
//
// # Errors
//
// No native status code or raw pointer crosses this package's boundary. Every
// failure surfaces as one of the sentinel errors in errors.go, wrapped with
// the operation that produced it; errors.Is works through the wrapping.
//
// # Without the native library
//
// When built without cgo (or on Windows) the package still compiles; Open and
// the native loaders return ErrNotBuilt. Pure-Go functionality — the state
// table parsers and writers — works everywhere.
package poet
