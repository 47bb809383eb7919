// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package drivertest provides a synthetic in-memory driver.Driver.
//
// The fake stores texture and buffer contents in plain byte slices and
// implements every entry point faithfully enough that the capability
// prober, the dispatch builder and all fallback emulation paths can be
// exercised without a GPU. Call counts per entry point let tests assert
// which dispatch path actually ran.
package drivertest

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpudev/driver"
)

// Sentinel errors reported by the fake driver.
var (
	// ErrUnknownObject is returned when an operation names an object the
	// fake never created or already destroyed.
	ErrUnknownObject = errors.New("drivertest: unknown object")

	// ErrNotSupported is returned when an extension-gated entry point is
	// called without the extension being enabled on the fake.
	ErrNotSupported = errors.New("drivertest: entry point not supported")

	// ErrOutOfBounds is returned for reads or writes outside a resource.
	ErrOutOfBounds = errors.New("drivertest: access out of bounds")
)

// Option configures the fake driver.
type Option func(*Driver)

// WithName sets the driver identification string.
func WithName(name string) Option {
	return func(d *Driver) { d.name = name }
}

// WithVersion sets the negotiated API version.
func WithVersion(major, minor int) Option {
	return func(d *Driver) { d.version = driver.Version{Major: major, Minor: minor} }
}

// WithVersionError makes the version query fail, simulating a fatally
// broken driver.
func WithVersionError(err error) Option {
	return func(d *Driver) { d.versionErr = err }
}

// WithProfile sets the platform profile.
func WithProfile(p driver.Profile) Option {
	return func(d *Driver) { d.profile = p }
}

// WithExtensions enables the given extensions on the fake.
func WithExtensions(exts ...string) Option {
	return func(d *Driver) {
		for _, e := range exts {
			d.exts[e] = true
		}
	}
}

type texture struct {
	desc   driver.TextureDescriptor
	levels [][]byte
}

func (t *texture) levelSize(level int) image.Point {
	w, h := t.desc.Width>>level, t.desc.Height>>level
	return image.Pt(max(w, 1), max(h, 1))
}

type framebuffer struct {
	tex   driver.TextureID
	level int
	bound bool
}

type buffer struct {
	data  []byte
	bound bool
}

type shader struct {
	source  []byte
	pending bool
}

// Driver is a synthetic in-memory driver. It is not safe for concurrent
// use, matching the single-submission-goroutine model of real drivers.
type Driver struct {
	name       string
	version    driver.Version
	versionErr error
	profile    driver.Profile
	exts       map[string]bool

	nextID       uint64
	textures     map[driver.TextureID]*texture
	framebuffers map[driver.FramebufferID]*framebuffer
	buffers      map[driver.BufferID]*buffer
	memories     map[driver.MemoryID]int
	renderPasses map[driver.RenderPassID]driver.RenderPassInfo
	shaders      map[driver.ShaderID]*shader
	inPass       bool

	// ResetStatus is what GraphicsResetStatus reports.
	ResetStatus driver.ResetStatus

	// Calls counts invocations per entry point name.
	Calls map[string]int
}

var _ driver.Driver = (*Driver)(nil)

// New creates a fake driver. Defaults: name "drivertest", version 1.0,
// desktop profile, no extensions.
func New(opts ...Option) *Driver {
	d := &Driver{
		name:         "drivertest",
		version:      driver.Version{Major: 1, Minor: 0},
		profile:      driver.ProfileDesktop,
		exts:         make(map[string]bool),
		textures:     make(map[driver.TextureID]*texture),
		framebuffers: make(map[driver.FramebufferID]*framebuffer),
		buffers:      make(map[driver.BufferID]*buffer),
		memories:     make(map[driver.MemoryID]int),
		renderPasses: make(map[driver.RenderPassID]driver.RenderPassInfo),
		shaders:      make(map[driver.ShaderID]*shader),
		Calls:        make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) count(name string) { d.Calls[name]++ }

func (d *Driver) id() uint64 {
	d.nextID++
	return d.nextID
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return d.name }

// Version implements driver.Driver.
func (d *Driver) Version() (driver.Version, error) {
	d.count("Version")
	if d.versionErr != nil {
		return driver.Version{}, d.versionErr
	}
	return d.version, nil
}

// Profile implements driver.Driver.
func (d *Driver) Profile() driver.Profile { return d.profile }

// IsExtensionSupported implements driver.Driver.
func (d *Driver) IsExtensionSupported(name string) bool {
	d.count("IsExtensionSupported")
	return d.exts[name]
}

// CreateTexture implements driver.Driver.
func (d *Driver) CreateTexture(desc driver.TextureDescriptor) (driver.TextureID, error) {
	d.count("CreateTexture")
	if desc.Width <= 0 || desc.Height <= 0 {
		return 0, fmt.Errorf("drivertest: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	if desc.Levels == 0 {
		desc.Levels = 1
	}
	t := &texture{desc: desc, levels: make([][]byte, desc.Levels)}
	for level := range t.levels {
		size := t.levelSize(level)
		t.levels[level] = make([]byte, size.X*size.Y*desc.Format.BytesPerPixel())
	}
	id := driver.TextureID(d.id())
	d.textures[id] = t
	return id, nil
}

// DestroyTexture implements driver.Driver.
func (d *Driver) DestroyTexture(id driver.TextureID) {
	d.count("DestroyTexture")
	delete(d.textures, id)
}

// TextureExists reports whether the texture is still alive, for
// double-free assertions in tests.
func (d *Driver) TextureExists(id driver.TextureID) bool {
	_, ok := d.textures[id]
	return ok
}

// WriteTexture implements driver.Driver.
func (d *Driver) WriteTexture(id driver.TextureID, level int, pix []byte) error {
	d.count("WriteTexture")
	t, ok := d.textures[id]
	if !ok || level < 0 || level >= len(t.levels) {
		return ErrUnknownObject
	}
	if len(pix) != len(t.levels[level]) {
		return fmt.Errorf("%w: got %d bytes, level holds %d", ErrOutOfBounds, len(pix), len(t.levels[level]))
	}
	copy(t.levels[level], pix)
	return nil
}

// WriteTextureSub implements driver.Driver.
func (d *Driver) WriteTextureSub(id driver.TextureID, level int, rect image.Rectangle, pix []byte) error {
	d.count("WriteTextureSub")
	t, ok := d.textures[id]
	if !ok || level < 0 || level >= len(t.levels) {
		return ErrUnknownObject
	}
	return writeRegion(t.levels[level], t.levelSize(level), rect, pix, t.desc.Format.BytesPerPixel())
}

// ReadTextureSub implements driver.Driver.
func (d *Driver) ReadTextureSub(id driver.TextureID, level int, rect image.Rectangle) ([]byte, error) {
	d.count("ReadTextureSub")
	if !d.exts["ARB_get_texture_sub_image"] {
		return nil, fmt.Errorf("%w: ReadTextureSub", ErrNotSupported)
	}
	t, ok := d.textures[id]
	if !ok || level < 0 || level >= len(t.levels) {
		return nil, ErrUnknownObject
	}
	return readRegion(t.levels[level], t.levelSize(level), rect, t.desc.Format.BytesPerPixel())
}

// CreateFramebuffer implements driver.Driver.
func (d *Driver) CreateFramebuffer() (driver.FramebufferID, error) {
	d.count("CreateFramebuffer")
	id := driver.FramebufferID(d.id())
	d.framebuffers[id] = &framebuffer{}
	return id, nil
}

// DestroyFramebuffer implements driver.Driver.
func (d *Driver) DestroyFramebuffer(id driver.FramebufferID) {
	d.count("DestroyFramebuffer")
	delete(d.framebuffers, id)
}

// LiveFramebuffers returns the number of framebuffers not yet destroyed,
// for transient-object leak assertions.
func (d *Driver) LiveFramebuffers() int { return len(d.framebuffers) }

// AttachTexture implements driver.Driver.
func (d *Driver) AttachTexture(fb driver.FramebufferID, tex driver.TextureID, level int) error {
	d.count("AttachTexture")
	f, ok := d.framebuffers[fb]
	if !ok {
		return ErrUnknownObject
	}
	if _, ok := d.textures[tex]; !ok {
		return ErrUnknownObject
	}
	f.tex, f.level, f.bound = tex, level, true
	return nil
}

// FramebufferStatus implements driver.Driver. Attachments in
// non-renderable formats report IncompleteAttachment, as real drivers do.
func (d *Driver) FramebufferStatus(fb driver.FramebufferID) driver.FramebufferStatus {
	d.count("FramebufferStatus")
	f, ok := d.framebuffers[fb]
	if !ok || !f.bound {
		return driver.FramebufferIncompleteMissingAttachment
	}
	t, ok := d.textures[f.tex]
	if !ok {
		return driver.FramebufferIncompleteMissingAttachment
	}
	if !t.desc.Format.Renderable() {
		return driver.FramebufferIncompleteAttachment
	}
	return driver.FramebufferComplete
}

// ReadFramebuffer implements driver.Driver.
func (d *Driver) ReadFramebuffer(fb driver.FramebufferID, rect image.Rectangle) ([]byte, error) {
	d.count("ReadFramebuffer")
	f, ok := d.framebuffers[fb]
	if !ok || !f.bound {
		return nil, ErrUnknownObject
	}
	t, ok := d.textures[f.tex]
	if !ok {
		return nil, ErrUnknownObject
	}
	return readRegion(t.levels[f.level], t.levelSize(f.level), rect, t.desc.Format.BytesPerPixel())
}

// CreateBuffer implements driver.Driver.
func (d *Driver) CreateBuffer(size int) (driver.BufferID, error) {
	d.count("CreateBuffer")
	if size <= 0 {
		return 0, fmt.Errorf("drivertest: invalid buffer size %d", size)
	}
	id := driver.BufferID(d.id())
	d.buffers[id] = &buffer{data: make([]byte, size)}
	return id, nil
}

// DestroyBuffer implements driver.Driver.
func (d *Driver) DestroyBuffer(id driver.BufferID) {
	d.count("DestroyBuffer")
	delete(d.buffers, id)
}

// BufferExists reports whether the buffer is still alive.
func (d *Driver) BufferExists(id driver.BufferID) bool {
	_, ok := d.buffers[id]
	return ok
}

// WriteBuffer implements driver.Driver.
func (d *Driver) WriteBuffer(id driver.BufferID, offset int, data []byte) error {
	d.count("WriteBuffer")
	b, ok := d.buffers[id]
	if !ok {
		return ErrUnknownObject
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		return ErrOutOfBounds
	}
	copy(b.data[offset:], data)
	return nil
}

// ReadBuffer implements driver.Driver.
func (d *Driver) ReadBuffer(id driver.BufferID, offset, size int) ([]byte, error) {
	d.count("ReadBuffer")
	b, ok := d.buffers[id]
	if !ok {
		return nil, ErrUnknownObject
	}
	if offset < 0 || size < 0 || offset+size > len(b.data) {
		return nil, ErrOutOfBounds
	}
	out := make([]byte, size)
	copy(out, b.data[offset:])
	return out, nil
}

// BufferMemoryRequirements implements driver.Driver.
func (d *Driver) BufferMemoryRequirements(id driver.BufferID) (driver.MemoryRequirements, error) {
	d.count("BufferMemoryRequirements")
	b, ok := d.buffers[id]
	if !ok {
		return driver.MemoryRequirements{}, ErrUnknownObject
	}
	return driver.MemoryRequirements{Size: len(b.data), Alignment: 4}, nil
}

// BufferMemoryRequirements2 implements driver.Driver.
func (d *Driver) BufferMemoryRequirements2(id driver.BufferID) (driver.MemoryRequirements, error) {
	d.count("BufferMemoryRequirements2")
	b, ok := d.buffers[id]
	if !ok {
		return driver.MemoryRequirements{}, ErrUnknownObject
	}
	return driver.MemoryRequirements{Size: alignUp(len(b.data), 256), Alignment: 256}, nil
}

// AllocateMemory implements driver.Driver.
func (d *Driver) AllocateMemory(size int) (driver.MemoryID, error) {
	d.count("AllocateMemory")
	if size <= 0 {
		return 0, fmt.Errorf("drivertest: invalid allocation size %d", size)
	}
	id := driver.MemoryID(d.id())
	d.memories[id] = size
	return id, nil
}

// FreeMemory implements driver.Driver.
func (d *Driver) FreeMemory(id driver.MemoryID) {
	d.count("FreeMemory")
	delete(d.memories, id)
}

// LiveMemories returns the number of memory allocations not yet freed.
func (d *Driver) LiveMemories() int { return len(d.memories) }

// BindBufferMemory implements driver.Driver.
func (d *Driver) BindBufferMemory(buf driver.BufferID, mem driver.MemoryID, offset int) error {
	d.count("BindBufferMemory")
	return d.bind(buf, mem, offset)
}

// BindBufferMemory2 implements driver.Driver.
func (d *Driver) BindBufferMemory2(buf driver.BufferID, mem driver.MemoryID, offset int) error {
	d.count("BindBufferMemory2")
	return d.bind(buf, mem, offset)
}

func (d *Driver) bind(buf driver.BufferID, mem driver.MemoryID, offset int) error {
	b, ok := d.buffers[buf]
	if !ok {
		return ErrUnknownObject
	}
	if _, ok := d.memories[mem]; !ok {
		return ErrUnknownObject
	}
	if offset < 0 {
		return ErrOutOfBounds
	}
	b.bound = true
	return nil
}

// CreateRenderPass implements driver.Driver.
func (d *Driver) CreateRenderPass(info driver.RenderPassInfo) (driver.RenderPassID, error) {
	d.count("CreateRenderPass")
	id := driver.RenderPassID(d.id())
	d.renderPasses[id] = info
	return id, nil
}

// CreateRenderPass2 implements driver.Driver.
func (d *Driver) CreateRenderPass2(info driver.RenderPassInfo) (driver.RenderPassID, error) {
	d.count("CreateRenderPass2")
	id := driver.RenderPassID(d.id())
	d.renderPasses[id] = info
	return id, nil
}

// DestroyRenderPass implements driver.Driver.
func (d *Driver) DestroyRenderPass(id driver.RenderPassID) {
	d.count("DestroyRenderPass")
	delete(d.renderPasses, id)
}

// RenderPassExists reports whether the render pass is still alive.
func (d *Driver) RenderPassExists(id driver.RenderPassID) bool {
	_, ok := d.renderPasses[id]
	return ok
}

// BeginRenderPass implements driver.Driver.
func (d *Driver) BeginRenderPass(rp driver.RenderPassID, fb driver.FramebufferID) error {
	d.count("BeginRenderPass")
	return d.begin(rp, fb)
}

// BeginRenderPass2 implements driver.Driver.
func (d *Driver) BeginRenderPass2(rp driver.RenderPassID, fb driver.FramebufferID) error {
	d.count("BeginRenderPass2")
	return d.begin(rp, fb)
}

func (d *Driver) begin(rp driver.RenderPassID, fb driver.FramebufferID) error {
	if _, ok := d.renderPasses[rp]; !ok {
		return ErrUnknownObject
	}
	if _, ok := d.framebuffers[fb]; !ok {
		return ErrUnknownObject
	}
	if d.inPass {
		return errors.New("drivertest: render pass already active")
	}
	d.inPass = true
	return nil
}

// NextSubpass implements driver.Driver.
func (d *Driver) NextSubpass() error {
	d.count("NextSubpass")
	return d.next()
}

// NextSubpass2 implements driver.Driver.
func (d *Driver) NextSubpass2() error {
	d.count("NextSubpass2")
	return d.next()
}

func (d *Driver) next() error {
	if !d.inPass {
		return errors.New("drivertest: no active render pass")
	}
	return nil
}

// EndRenderPass implements driver.Driver.
func (d *Driver) EndRenderPass() error {
	d.count("EndRenderPass")
	return d.end()
}

// EndRenderPass2 implements driver.Driver.
func (d *Driver) EndRenderPass2() error {
	d.count("EndRenderPass2")
	return d.end()
}

func (d *Driver) end() error {
	if !d.inPass {
		return errors.New("drivertest: no active render pass")
	}
	d.inPass = false
	return nil
}

// CopyBuffer implements driver.Driver.
func (d *Driver) CopyBuffer(src, dst driver.BufferID, srcOffset, dstOffset, size int) error {
	d.count("CopyBuffer")
	return d.copyBuffer(src, dst, srcOffset, dstOffset, size)
}

// CopyBuffer2 implements driver.Driver.
func (d *Driver) CopyBuffer2(src, dst driver.BufferID, srcOffset, dstOffset, size int) error {
	d.count("CopyBuffer2")
	return d.copyBuffer(src, dst, srcOffset, dstOffset, size)
}

func (d *Driver) copyBuffer(src, dst driver.BufferID, srcOffset, dstOffset, size int) error {
	s, ok := d.buffers[src]
	if !ok {
		return ErrUnknownObject
	}
	t, ok := d.buffers[dst]
	if !ok {
		return ErrUnknownObject
	}
	if srcOffset < 0 || dstOffset < 0 || size < 0 ||
		srcOffset+size > len(s.data) || dstOffset+size > len(t.data) {
		return ErrOutOfBounds
	}
	copy(t.data[dstOffset:dstOffset+size], s.data[srcOffset:])
	return nil
}

// CopyImage implements driver.Driver.
func (d *Driver) CopyImage(src, dst driver.TextureID, rect image.Rectangle) error {
	d.count("CopyImage")
	return d.copyImage(src, dst, rect)
}

// CopyImage2 implements driver.Driver.
func (d *Driver) CopyImage2(src, dst driver.TextureID, rect image.Rectangle) error {
	d.count("CopyImage2")
	return d.copyImage(src, dst, rect)
}

func (d *Driver) copyImage(src, dst driver.TextureID, rect image.Rectangle) error {
	s, ok := d.textures[src]
	if !ok {
		return ErrUnknownObject
	}
	t, ok := d.textures[dst]
	if !ok {
		return ErrUnknownObject
	}
	if s.desc.Format != t.desc.Format {
		return fmt.Errorf("drivertest: copy between %s and %s", s.desc.Format, t.desc.Format)
	}
	pix, err := readRegion(s.levels[0], s.levelSize(0), rect, s.desc.Format.BytesPerPixel())
	if err != nil {
		return err
	}
	return writeRegion(t.levels[0], t.levelSize(0), rect, pix, t.desc.Format.BytesPerPixel())
}

// CompileShader implements driver.Driver.
func (d *Driver) CompileShader(source []byte) (driver.ShaderID, error) {
	d.count("CompileShader")
	if len(source) == 0 {
		return 0, errors.New("drivertest: empty shader source")
	}
	id := driver.ShaderID(d.id())
	d.shaders[id] = &shader{source: source}
	return id, nil
}

// SubmitCompile implements driver.Driver.
func (d *Driver) SubmitCompile(source []byte) (driver.ShaderID, error) {
	d.count("SubmitCompile")
	if len(source) == 0 {
		return 0, errors.New("drivertest: empty shader source")
	}
	id := driver.ShaderID(d.id())
	d.shaders[id] = &shader{source: source, pending: true}
	return id, nil
}

// WaitShader implements driver.Driver.
func (d *Driver) WaitShader(id driver.ShaderID) error {
	d.count("WaitShader")
	s, ok := d.shaders[id]
	if !ok {
		return ErrUnknownObject
	}
	s.pending = false
	return nil
}

// DestroyShader implements driver.Driver.
func (d *Driver) DestroyShader(id driver.ShaderID) {
	d.count("DestroyShader")
	delete(d.shaders, id)
}

// ClearDepth implements driver.Driver.
func (d *Driver) ClearDepth(float64) error {
	d.count("ClearDepth")
	return nil
}

// ClearDepthFloat implements driver.Driver.
func (d *Driver) ClearDepthFloat(float32) error {
	d.count("ClearDepthFloat")
	return nil
}

// GraphicsResetStatus implements driver.Driver.
func (d *Driver) GraphicsResetStatus() driver.ResetStatus {
	d.count("GraphicsResetStatus")
	return d.ResetStatus
}

// ReinterpretFloatPass implements driver.Driver as a pure bit copy: the
// float texels in rect are moved into the uint texture unchanged, which
// is exactly what floatBitsToUint does on hardware.
func (d *Driver) ReinterpretFloatPass(src driver.TextureID, level int, rect image.Rectangle, dst driver.TextureID) error {
	d.count("ReinterpretFloatPass")
	s, ok := d.textures[src]
	if !ok || level < 0 || level >= len(s.levels) {
		return ErrUnknownObject
	}
	t, ok := d.textures[dst]
	if !ok {
		return ErrUnknownObject
	}
	if s.desc.Format.BytesPerPixel() != t.desc.Format.BytesPerPixel() {
		return fmt.Errorf("drivertest: reinterpret between texel widths %d and %d",
			s.desc.Format.BytesPerPixel(), t.desc.Format.BytesPerPixel())
	}
	pix, err := readRegion(s.levels[level], s.levelSize(level), rect, s.desc.Format.BytesPerPixel())
	if err != nil {
		return err
	}
	if len(pix) != len(t.levels[0]) {
		return fmt.Errorf("%w: staging texture size mismatch", ErrOutOfBounds)
	}
	copy(t.levels[0], pix)
	return nil
}

// DistanceFieldPass implements driver.Driver with a brute-force signed
// distance search on the CPU. Inside texels (source value >= 0x80) get
// distances above 127, outside texels below, scaled by the radius.
func (d *Driver) DistanceFieldPass(src, dst driver.TextureID, radius int) error {
	d.count("DistanceFieldPass")
	s, ok := d.textures[src]
	if !ok {
		return ErrUnknownObject
	}
	t, ok := d.textures[dst]
	if !ok {
		return ErrUnknownObject
	}
	srcSize, dstSize := s.levelSize(0), t.levelSize(0)
	if dstSize.X == 0 || dstSize.Y == 0 {
		return ErrOutOfBounds
	}
	ratio := srcSize.X / dstSize.X
	srcBPP := s.desc.Format.BytesPerPixel()
	dstBPP := t.desc.Format.BytesPerPixel()

	inside := func(x, y int) bool {
		if x < 0 || y < 0 || x >= srcSize.X || y >= srcSize.Y {
			return false
		}
		return s.levels[0][(y*srcSize.X+x)*srcBPP] >= 0x80
	}
	for dy := 0; dy < dstSize.Y; dy++ {
		for dx := 0; dx < dstSize.X; dx++ {
			cx, cy := dx*ratio+ratio/2, dy*ratio+ratio/2
			center := inside(cx, cy)
			best := radius * radius
			for oy := -radius; oy <= radius; oy++ {
				for ox := -radius; ox <= radius; ox++ {
					if inside(cx+ox, cy+oy) == center {
						continue
					}
					if d2 := ox*ox + oy*oy; d2 < best {
						best = d2
					}
				}
			}
			v := intSqrt(best) * 127 / radius
			out := 127 - v
			if center {
				out = 128 + v
			}
			t.levels[0][(dy*dstSize.X+dx)*dstBPP] = byte(min(out, 255))
		}
	}
	return nil
}

func intSqrt(v int) int {
	r := 0
	for (r+1)*(r+1) <= v {
		r++
	}
	return r
}

func alignUp(v, align int) int {
	return (v + align - 1) / align * align
}

func readRegion(pix []byte, size image.Point, rect image.Rectangle, bpp int) ([]byte, error) {
	if rect.Min.X < 0 || rect.Min.Y < 0 || rect.Max.X > size.X || rect.Max.Y > size.Y || rect.Empty() {
		return nil, fmt.Errorf("%w: rect %v outside %v", ErrOutOfBounds, rect, size)
	}
	out := make([]byte, rect.Dx()*rect.Dy()*bpp)
	for y := 0; y < rect.Dy(); y++ {
		srcOff := ((rect.Min.Y+y)*size.X + rect.Min.X) * bpp
		copy(out[y*rect.Dx()*bpp:], pix[srcOff:srcOff+rect.Dx()*bpp])
	}
	return out, nil
}

func writeRegion(pix []byte, size image.Point, rect image.Rectangle, data []byte, bpp int) error {
	if rect.Min.X < 0 || rect.Min.Y < 0 || rect.Max.X > size.X || rect.Max.Y > size.Y || rect.Empty() {
		return fmt.Errorf("%w: rect %v outside %v", ErrOutOfBounds, rect, size)
	}
	if len(data) < rect.Dx()*rect.Dy()*bpp {
		return fmt.Errorf("%w: %d bytes for %v", ErrOutOfBounds, len(data), rect)
	}
	for y := 0; y < rect.Dy(); y++ {
		dstOff := ((rect.Min.Y+y)*size.X + rect.Min.X) * bpp
		copy(pix[dstOff:dstOff+rect.Dx()*bpp], data[y*rect.Dx()*bpp:])
	}
	return nil
}
