// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package caps

import (
	"fmt"

	"github.com/gogpu/gpudev/driver"
)

// Probe queries the driver once for its version, profile and the given
// extensions of interest, and returns the immutable capability snapshot.
//
// Probing happens fully before any dispatch table is built; downstream
// code reads only the snapshot. A failing version query is unrecoverable
// and returned as an error — without a snapshot nothing downstream is
// safe to run.
func Probe(drv driver.Driver, interest []Extension) (*Snapshot, error) {
	version, err := drv.Version()
	if err != nil {
		return nil, fmt.Errorf("caps: probe: version query failed: %w", err)
	}

	s := &Snapshot{
		version:    version,
		profile:    drv.Profile(),
		driverName: drv.Name(),
		supported:  make(map[Extension]bool, len(interest)),
	}
	for _, ext := range interest {
		if s.supported[ext] {
			continue // duplicate interest entry
		}
		if drv.IsExtensionSupported(string(ext)) {
			s.supported[ext] = true
			s.detected = append(s.detected, ext)
		}
	}
	return s, nil
}
