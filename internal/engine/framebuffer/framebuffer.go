// Package framebuffer provides OpenGL framebuffer utilities for offscreen rendering.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Attachment describes the storage of one color attachment.
type Attachment struct {
	Internal int32
	Format   uint32
	Type     uint32
	Filter   int32
}

// Attachment formats.
var (
	RGBA8   = Attachment{Internal: gl.RGBA8, Format: gl.RGBA, Type: gl.UNSIGNED_BYTE, Filter: gl.LINEAR}
	RGBA16F = Attachment{Internal: gl.RGBA16F, Format: gl.RGBA, Type: gl.FLOAT, Filter: gl.NEAREST}
)

// G-buffer attachment indices, matching the outputs of the geometry pass.
const (
	GPosition = iota
	GNormal
	GAmbient
	GDiffuse
	GSpecular
	gbufferSize
)

// GBufferSamplers are the lighting pass sampler names, by attachment.
var GBufferSamplers = [gbufferSize]string{"g_position", "g_normal", "g_ambient", "g_diffuse", "g_specular"}

// Framebuffer manages an offscreen render target with color and depth attachments.
type Framebuffer struct {
	fbo         uint32
	textures    []uint32
	attachments []Attachment
	depthRBO    uint32
	width       int32
	height      int32
}

// New creates a framebuffer with the given color attachments, a single
// RGBA8 one when none are given.
func New(width, height int32, attachments ...Attachment) (*Framebuffer, error) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if len(attachments) == 0 {
		attachments = []Attachment{RGBA8}
	}

	fb := &Framebuffer{
		width:       width,
		height:      height,
		attachments: attachments,
	}

	if err := fb.create(); err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	return fb, nil
}

// NewGBuffer creates the geometry pass target.
func NewGBuffer(width, height int32) (*Framebuffer, error) {
	return New(width, height, RGBA16F, RGBA16F, RGBA8, RGBA8, RGBA16F)
}

func (fb *Framebuffer) create() error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	fb.textures = make([]uint32, len(fb.attachments))
	gl.GenTextures(int32(len(fb.textures)), &fb.textures[0])
	drawBuffers := make([]uint32, len(fb.textures))
	for i, a := range fb.attachments {
		gl.BindTexture(gl.TEXTURE_2D, fb.textures[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, a.Internal, fb.width, fb.height, 0, a.Format, a.Type, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, a.Filter)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, a.Filter)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		drawBuffers[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, drawBuffers[i], gl.TEXTURE_2D, fb.textures[i], 0)
	}
	gl.DrawBuffers(int32(len(drawBuffers)), &drawBuffers[0])

	gl.GenRenderbuffers(1, &fb.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

// Bind makes this framebuffer the current render target.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
}

// Unbind restores the default framebuffer.
func (fb *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// BindWithViewport binds and sets viewport, saving previous state.
// Returns a restore function to restore the previous framebuffer and viewport.
func (fb *Framebuffer) BindWithViewport() func() {
	var prevFBO int32
	var prevViewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)

	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
	}
}

// Clear clears color and depth buffers with the specified color.
func (fb *Framebuffer) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ColorTexture returns the first color attachment.
func (fb *Framebuffer) ColorTexture() uint32 {
	return fb.textures[0]
}

// Texture returns color attachment i.
func (fb *Framebuffer) Texture(i int) uint32 {
	return fb.textures[i]
}

// Attachments returns the number of color attachments.
func (fb *Framebuffer) Attachments() int {
	return len(fb.textures)
}

// BindTextures binds every color attachment to consecutive texture units
// starting at unit 0.
func (fb *Framebuffer) BindTextures() {
	for i, tex := range fb.textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
}

// BlitDepth copies the depth buffer into dst so later passes can depth
// test against the geometry.
func (fb *Framebuffer) BlitDepth(dst *Framebuffer) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, dst.fbo)
	gl.BlitFramebuffer(0, 0, fb.width, fb.height, 0, 0, dst.width, dst.height, gl.DEPTH_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, dst.fbo)
}

// BlitToScreen copies the first color attachment to the default
// framebuffer, scaled to width x height.
func (fb *Framebuffer) BlitToScreen(width, height int32) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, fb.width, fb.height, 0, 0, width, height, gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// FBO returns the underlying framebuffer object ID.
func (fb *Framebuffer) FBO() uint32 {
	return fb.fbo
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int32) {
	return fb.width, fb.height
}

// Resize updates the framebuffer dimensions if they have changed.
func (fb *Framebuffer) Resize(width, height int32) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == fb.width && height == fb.height {
		return
	}
	fb.width = width
	fb.height = height

	for i, a := range fb.attachments {
		gl.BindTexture(gl.TEXTURE_2D, fb.textures[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, a.Internal, fb.width, fb.height, 0, a.Format, a.Type, nil)
	}

	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
}

// ReadPixels reads the first color attachment as RGBA rows, bottom row
// first.
func (fb *Framebuffer) ReadPixels() []byte {
	pixels := make([]byte, fb.width*fb.height*4)

	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, fb.width, fb.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))

	return pixels
}

// Destroy releases all OpenGL resources.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if len(fb.textures) > 0 {
		gl.DeleteTextures(int32(len(fb.textures)), &fb.textures[0])
		fb.textures = nil
	}
	if fb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.depthRBO)
		fb.depthRBO = 0
	}
}
