// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dispatch_test

import (
	"testing"

	"github.com/gogpu/gpudev/caps"
	"github.com/gogpu/gpudev/dispatch"
	"github.com/gogpu/gpudev/driver"
	"github.com/gogpu/gpudev/internal/drivertest"
)

func snapshot(t *testing.T, opts ...drivertest.Option) *caps.Snapshot {
	t.Helper()
	snap, err := caps.Probe(drivertest.New(opts...), caps.DefaultInterest())
	if err != nil {
		t.Fatalf("Probe() = %v", err)
	}
	return snap
}

// kinds flattens a table's selection tags for equality checks.
type kinds struct {
	create  dispatch.CreateRenderPassKind
	control dispatch.RenderPassControlKind
	bind    dispatch.BindBufferMemoryKind
	memReq  dispatch.MemoryRequirementsKind
	copyBuf dispatch.CopyKind
	copyImg dispatch.CopyKind
	readSub dispatch.ReadTextureSubKind
	depth   dispatch.ClearDepthKind
	reset   dispatch.ResetStatusKind
}

func kindsOf(t *dispatch.Table) kinds {
	return kinds{
		create:  t.CreateRenderPassKind,
		control: t.RenderPassControlKind,
		bind:    t.BindBufferMemoryKind,
		memReq:  t.MemoryRequirementsKind,
		copyBuf: t.CopyBufferKind,
		copyImg: t.CopyImageKind,
		readSub: t.ReadTextureSubKind,
		depth:   t.ClearDepthKind,
		reset:   t.GraphicsResetStatusKind,
	}
}

func TestBuildSelection(t *testing.T) {
	tests := []struct {
		name string
		opts []drivertest.Option
		want kinds
	}{
		{
			name: "baseline 1.0 desktop",
			opts: []drivertest.Option{drivertest.WithVersion(1, 0)},
			want: kinds{
				create:  dispatch.CreateRenderPassCompat,
				control: dispatch.RenderPassControlBasic,
				bind:    dispatch.BindBufferMemorySingle,
				memReq:  dispatch.MemoryRequirementsBasic,
				copyBuf: dispatch.CopyBasic,
				copyImg: dispatch.CopyBasic,
				readSub: dispatch.ReadTextureSubFramebuffer,
				depth:   dispatch.ClearDepthDouble,
				reset:   dispatch.ResetStatusNoOp,
			},
		},
		{
			name: "core 1.3 gets everything from the version",
			opts: []drivertest.Option{drivertest.WithVersion(1, 3)},
			want: kinds{
				create:  dispatch.CreateRenderPassCore12,
				control: dispatch.RenderPassControl2,
				bind:    dispatch.BindBufferMemory2,
				memReq:  dispatch.MemoryRequirements2,
				copyBuf: dispatch.CopyCommands2,
				copyImg: dispatch.CopyCommands2,
				readSub: dispatch.ReadTextureSubFramebuffer,
				depth:   dispatch.ClearDepthDouble,
				reset:   dispatch.ResetStatusNoOp,
			},
		},
		{
			name: "1.0 with KHR extensions",
			opts: []drivertest.Option{
				drivertest.WithVersion(1, 0),
				drivertest.WithExtensions(
					string(caps.ExtCreateRenderPass2),
					string(caps.ExtBindMemory2),
					string(caps.ExtGetMemoryRequirements2),
					string(caps.ExtCopyCommands2),
					string(caps.ExtGetTextureSubImage),
					string(caps.ExtRobustness),
				),
			},
			want: kinds{
				create:  dispatch.CreateRenderPassKHR,
				control: dispatch.RenderPassControl2,
				bind:    dispatch.BindBufferMemory2,
				memReq:  dispatch.MemoryRequirements2,
				copyBuf: dispatch.CopyCommands2,
				copyImg: dispatch.CopyCommands2,
				readSub: dispatch.ReadTextureSubDirect,
				depth:   dispatch.ClearDepthDouble,
				reset:   dispatch.ResetStatusRobustness,
			},
		},
		{
			name: "es profile clears depth in single precision",
			opts: []drivertest.Option{drivertest.WithProfile(driver.ProfileES)},
			want: kinds{
				create:  dispatch.CreateRenderPassCompat,
				control: dispatch.RenderPassControlBasic,
				bind:    dispatch.BindBufferMemorySingle,
				memReq:  dispatch.MemoryRequirementsBasic,
				copyBuf: dispatch.CopyBasic,
				copyImg: dispatch.CopyBasic,
				readSub: dispatch.ReadTextureSubFramebuffer,
				depth:   dispatch.ClearDepthFloat,
				reset:   dispatch.ResetStatusNoOp,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := dispatch.Build(snapshot(t, tt.opts...), nil)
			if got := kindsOf(table); got != tt.want {
				t.Errorf("Build() kinds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	snap := snapshot(t,
		drivertest.WithVersion(1, 1),
		drivertest.WithName("SwiftShader Device"),
		drivertest.WithExtensions(string(caps.ExtCopyCommands2), string(caps.ExtRobustness)),
	)

	a := dispatch.Build(snap, nil)
	b := dispatch.Build(snap, nil)

	if kindsOf(a) != kindsOf(b) {
		t.Errorf("rebuilt table kinds differ: %+v vs %+v", kindsOf(a), kindsOf(b))
	}
	if len(a.EncounteredWorkarounds) != len(b.EncounteredWorkarounds) {
		t.Errorf("rebuilt workaround lists differ: %v vs %v",
			a.EncounteredWorkarounds, b.EncounteredWorkarounds)
	}
}

func TestBuildMakesNoDriverCalls(t *testing.T) {
	drv := drivertest.New(drivertest.WithVersion(1, 2))
	snap, err := caps.Probe(drv, caps.DefaultInterest())
	if err != nil {
		t.Fatalf("Probe() = %v", err)
	}
	before := len(drv.Calls)

	dispatch.Build(snap, nil)

	if len(drv.Calls) != before {
		t.Errorf("Build() touched the driver: calls = %v", drv.Calls)
	}
}

func TestBuildNoNilSlots(t *testing.T) {
	table := dispatch.Build(snapshot(t), nil)

	if table.CreateRenderPass == nil || table.BeginRenderPass == nil ||
		table.NextSubpass == nil || table.EndRenderPass == nil ||
		table.BindBufferMemory == nil || table.BufferMemoryRequirements == nil ||
		table.CopyBuffer == nil || table.CopyImage == nil ||
		table.ReadTextureSub == nil || table.ClearDepth == nil ||
		table.GraphicsResetStatus == nil {
		t.Error("Build() left a nil slot")
	}
}

func TestWorkaroundSubstitution(t *testing.T) {
	tests := []struct {
		name       string
		driverName string
		version    [2]int
		wantName   string
		check      func(*testing.T, *dispatch.Table)
	}{
		{
			name:       "swiftshader image copy",
			driverName: "Google SwiftShader 5.0",
			version:    [2]int{1, 3},
			wantName:   "swiftshader-image-copy-extent",
			check: func(t *testing.T, table *dispatch.Table) {
				if table.CopyImageKind != dispatch.CopyImagePatched {
					t.Errorf("CopyImageKind = %v, want Patched", table.CopyImageKind)
				}
				// Buffer copies stay on the preferred path.
				if table.CopyBufferKind != dispatch.CopyCommands2 {
					t.Errorf("CopyBufferKind = %v, want Commands2", table.CopyBufferKind)
				}
			},
		},
		{
			name:       "angle render pass baseline",
			driverName: "ANGLE (Vulkan backend)",
			version:    [2]int{1, 2},
			wantName:   "angle-renderpass2-baseline",
			check: func(t *testing.T, table *dispatch.Table) {
				if table.CreateRenderPassKind != dispatch.CreateRenderPassCompat {
					t.Errorf("CreateRenderPassKind = %v, want Compat", table.CreateRenderPassKind)
				}
				if table.RenderPassControlKind != dispatch.RenderPassControlBasic {
					t.Errorf("RenderPassControlKind = %v, want Basic", table.RenderPassControlKind)
				}
			},
		},
		{
			name:       "llvmpipe memory requirements",
			driverName: "Mesa llvmpipe (LLVM 17)",
			version:    [2]int{1, 1},
			wantName:   "llvmpipe-memory-requirements2",
			check: func(t *testing.T, table *dispatch.Table) {
				if table.MemoryRequirementsKind != dispatch.MemoryRequirementsBasic {
					t.Errorf("MemoryRequirementsKind = %v, want Basic", table.MemoryRequirementsKind)
				}
				// The bind path is unaffected.
				if table.BindBufferMemoryKind != dispatch.BindBufferMemory2 {
					t.Errorf("BindBufferMemoryKind = %v, want Bind2", table.BindBufferMemoryKind)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshot(t,
				drivertest.WithName(tt.driverName),
				drivertest.WithVersion(tt.version[0], tt.version[1]),
			)
			table := dispatch.Build(snap, nil)

			found := false
			for _, w := range table.EncounteredWorkarounds {
				if w == tt.wantName {
					found = true
				}
			}
			if !found {
				t.Errorf("EncounteredWorkarounds = %v, want %q recorded", table.EncounteredWorkarounds, tt.wantName)
			}
			tt.check(t, table)
		})
	}
}

func TestWorkaroundDisabled(t *testing.T) {
	snap := snapshot(t,
		drivertest.WithName("Google SwiftShader 5.0"),
		drivertest.WithVersion(1, 3),
	)

	table := dispatch.Build(snap, dispatch.DisableWorkarounds("swiftshader-image-copy-extent"))

	if table.CopyImageKind != dispatch.CopyCommands2 {
		t.Errorf("CopyImageKind = %v with workaround disabled, want Commands2", table.CopyImageKind)
	}
	if len(table.EncounteredWorkarounds) != 0 {
		t.Errorf("EncounteredWorkarounds = %v, want empty", table.EncounteredWorkarounds)
	}
}

func TestWorkaroundUnrelatedDriverUntouched(t *testing.T) {
	snap := snapshot(t,
		drivertest.WithName("NVIDIA GeForce RTX 3080"),
		drivertest.WithVersion(1, 3),
	)

	table := dispatch.Build(snap, nil)

	if len(table.EncounteredWorkarounds) != 0 {
		t.Errorf("EncounteredWorkarounds = %v for unaffected driver, want empty", table.EncounteredWorkarounds)
	}
	if table.CopyImageKind != dispatch.CopyCommands2 {
		t.Errorf("CopyImageKind = %v, want Commands2", table.CopyImageKind)
	}
}
