// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dispatch

import (
	"image"
	"strings"

	"github.com/gogpu/gpudev/driver"
)

// WorkaroundSet holds names of driver workarounds that must not be
// applied even when the driver matches.
type WorkaroundSet map[string]bool

// DisableWorkarounds builds a WorkaroundSet from workaround names.
// Unknown names are accepted and simply never match anything.
func DisableWorkarounds(names ...string) WorkaroundSet {
	s := make(WorkaroundSet, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

// workaround is one known-buggy driver/operation pair. Entries are opaque
// quirks matched by a substring of the driver identification string; the
// underlying driver bugs carry no public tracker reference and should be
// reverified against current driver versions rather than trusted forever.
type workaround struct {
	// name identifies the workaround for diagnostics and for disabling.
	name string

	// driverSubstring selects affected drivers by identification string.
	driverSubstring string

	// apply substitutes the patched implementation into the table.
	apply func(t *Table)
}

// knownWorkarounds is evaluated in order after normal slot selection.
var knownWorkarounds = []workaround{
	{
		// SwiftShader's extended image copy confuses the copy extent
		// with the layer count; route image copies through the baseline
		// entry point instead.
		name:            "swiftshader-image-copy-extent",
		driverSubstring: "SwiftShader",
		apply: func(t *Table) {
			t.CopyImage = copyImagePatched
			t.CopyImageKind = CopyImagePatched
		},
	},
	{
		// ANGLE advertises the extended render pass entry points but
		// loses subpass self-dependencies through them; stay on the
		// baseline creation and control paths.
		name:            "angle-renderpass2-baseline",
		driverSubstring: "ANGLE",
		apply: func(t *Table) {
			t.CreateRenderPass = createRenderPassBasic
			t.CreateRenderPassKind = CreateRenderPassCompat
			t.BeginRenderPass = beginRenderPassBasic
			t.NextSubpass = nextSubpassBasic
			t.EndRenderPass = endRenderPassBasic
			t.RenderPassControlKind = RenderPassControlBasic
		},
	},
	{
		// llvmpipe reports bogus alignment from the extended
		// memory-requirements query; the baseline query is fine.
		name:            "llvmpipe-memory-requirements2",
		driverSubstring: "llvmpipe",
		apply: func(t *Table) {
			t.BufferMemoryRequirements = bufferMemoryRequirementsBasic
			t.MemoryRequirementsKind = MemoryRequirementsBasic
		},
	},
}

// applyWorkarounds substitutes patched implementations for drivers known
// to mishandle their otherwise-preferred path, unless explicitly
// disabled. Applied workarounds are recorded on the table.
func applyWorkarounds(t *Table, driverName string, disabled WorkaroundSet) {
	for _, w := range knownWorkarounds {
		if disabled[w.name] || !strings.Contains(driverName, w.driverSubstring) {
			continue
		}
		w.apply(t)
		t.EncounteredWorkarounds = append(t.EncounteredWorkarounds, w.name)
	}
}

// copyImagePatched is the SwiftShader image copy substitute: the baseline
// entry point with a canonicalized rectangle, avoiding the extended
// path's extent handling entirely.
func copyImagePatched(drv driver.Driver, src, dst driver.TextureID, rect image.Rectangle) error {
	return drv.CopyImage(src, dst, rect.Canon())
}
