// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dispatch builds the per-device table of operation
// implementations.
//
// Several driver operations have more than one possible entry point
// depending on the negotiated API version, the extension set and the
// platform profile. Instead of branching on capabilities at every call,
// the selection happens exactly once when the device is created: [Build]
// inspects the capability snapshot and fills one function slot per
// operation, newest path first, baseline fallback last. Known-buggy
// drivers get a patched implementation substituted over the normal
// choice.
//
// Build makes no driver calls, so slot selection is fully testable with a
// synthetic snapshot and driver string.
package dispatch
