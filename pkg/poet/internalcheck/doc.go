// Package internalcheck holds repository policy tests for the poet wrapper.
//
// The tests here enforce the boundary rules the wrapper is built on: raw
// pointers and cgo stay inside internal/bindings, and only the safe surface
// talks to that package. They are not intended for external use.
package internalcheck
