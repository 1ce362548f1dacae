// Package native is the foreign-function layer between Go and the Tesseract
// and Leptonica shared libraries.
//
// The libraries are opened at runtime with purego, so nothing in this module
// needs C headers or cgo to build. Every entry point is resolved once by Load;
// a library or symbol that cannot be found makes Load fail with a descriptive
// error instead of panicking, which lets callers (and tests) degrade cleanly
// on machines without Tesseract installed.
//
// # Marshaling
//
// Native strings are NUL-terminated UTF-8. GoString copies one into Go memory,
// TakeText copies and then releases a string the caller owns, and CString /
// CStringArray allocate C memory for values that must outlive a single call.
//
// # Ownership
//
// Lifetime tracks a single native handle: it releases the handle exactly once,
// closes adopted children first, runs close hooks afterwards and, as a last
// resort, releases leaked handles from a finalizer while logging a warning.
package native
