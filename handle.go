// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

// Flags control the destruction behavior of a [Handle].
type Flags uint8

const (
	// DestroyOnDestruction makes the handle call the native destroy
	// function when Destroy is invoked. Handles without this flag are
	// non-owning views and Destroy is a no-op on them.
	DestroyOnDestruction Flags = 1 << 0
)

// DestroyFunc releases the native object behind a handle. Destroy entry
// points of the underlying APIs are defined as always succeeding, so
// there is no error return.
type DestroyFunc[T comparable] func(T)

// Handle is a wrapper around a native GPU object reference with explicit
// ownership.
//
// Exactly one live Handle owns a given native object at a time. Transfer
// moves ownership out and clears the source to the zero sentinel, so a
// transferred-from handle's Destroy is a no-op and double-free is
// impossible as long as handles are passed by pointer or moved with
// Transfer/Reset rather than copied.
//
// The zero Handle is valid and inert.
type Handle[T comparable] struct {
	native  T
	flags   Flags
	destroy DestroyFunc[T]
}

// Wrap adopts an externally created native object. By default the handle
// is a non-owning view; pass DestroyOnDestruction to transfer ownership
// to the handle.
func Wrap[T comparable](native T, destroy DestroyFunc[T], flags Flags) Handle[T] {
	return Handle[T]{native: native, flags: flags, destroy: destroy}
}

// Own wraps a freshly created native object with ownership. Shorthand for
// Wrap with DestroyOnDestruction.
func Own[T comparable](native T, destroy DestroyFunc[T]) Handle[T] {
	return Wrap(native, destroy, DestroyOnDestruction)
}

// Native returns the underlying native object reference. The zero value
// of T means "no object".
func (h *Handle[T]) Native() T { return h.native }

// Flags returns the handle's ownership flags.
func (h *Handle[T]) Flags() Flags { return h.flags }

// IsZero reports whether the handle holds no native object.
func (h *Handle[T]) IsZero() bool {
	var zero T
	return h.native == zero
}

// Release returns the native object and gives up ownership: the handle is
// cleared to the sentinel and a later Destroy is a no-op. The caller
// takes full responsibility for destroying the returned object.
func (h *Handle[T]) Release() T {
	native := h.native
	var zero T
	h.native = zero
	h.flags &^= DestroyOnDestruction
	h.destroy = nil
	return native
}

// Destroy releases the native object if the handle owns one, then clears
// the handle. Safe to call multiple times and on non-owning or
// transferred-from handles.
func (h *Handle[T]) Destroy() {
	var zero T
	if h.native != zero && h.flags&DestroyOnDestruction != 0 && h.destroy != nil {
		h.destroy(h.native)
	}
	h.native = zero
	h.flags &^= DestroyOnDestruction
	h.destroy = nil
}

// Transfer moves the native object and flags into a new handle, leaving
// the receiver cleared. The Go analogue of move construction.
func (h *Handle[T]) Transfer() Handle[T] {
	moved := *h
	var zero T
	h.native = zero
	h.flags &^= DestroyOnDestruction
	h.destroy = nil
	return moved
}

// Reset replaces the handle's contents with those of other, destroying
// the currently owned object first. Other is cleared. The Go analogue of
// move assignment.
func (h *Handle[T]) Reset(other *Handle[T]) {
	if h == other {
		return
	}
	h.Destroy()
	*h = other.Transfer()
}
