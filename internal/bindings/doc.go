// Package bindings contains the raw cgo surface for the native POET library.
//
// # Design Principles
//
//  1. Isolation: ALL cgo code lives in this package. No other package imports
//     "C", and no raw pointer or native status code escapes it.
//
//  2. Minimal Surface: only the functions the safe wrapper needs are bound.
//
//  3. Error Handling: native status codes and NULL returns are converted to
//     Go errors at the boundary, immediately.
//
//  4. Memory Management: state tables handed to poet_init are allocated in C
//     memory and stay alive until Destroy frees them; arrays returned by the
//     native config loaders are copied into Go slices and freed before the
//     call returns.
//
//  5. Callbacks: Go callbacks never cross into C as Go pointers. The
//     trampolines exported from this package look the owning record up in a
//     mutex-guarded registry keyed by the C-side states pointer.
//
// The package builds in two modes: with cgo on non-Windows platforms it links
// against the system-installed libpoet; otherwise every entry point returns
// ErrNotBuilt so the module still compiles and downstream code can degrade
// gracefully.
//
// libpoet is not documented as thread-safe on a shared poet_state. Callers
// must serialize access to a handle; this package only guards its own
// registries.
package bindings
