// Package renderer draws a scene registry with OpenGL.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/engine/camera"
	"github.com/Faultbox/objviewer/internal/engine/debug"
	"github.com/Faultbox/objviewer/internal/engine/framebuffer"
	"github.com/Faultbox/objviewer/internal/engine/lighting"
	"github.com/Faultbox/objviewer/internal/engine/model"
	"github.com/Faultbox/objviewer/internal/engine/picking"
	"github.com/Faultbox/objviewer/internal/engine/scene"
	"github.com/Faultbox/objviewer/internal/engine/shader"
	"github.com/Faultbox/objviewer/internal/engine/texture"
	"github.com/Faultbox/objviewer/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	ClearColor math.Vec3
	// Deferred selects the geometry + lighting passes; otherwise models
	// are drawn directly with a headlight.
	Deferred bool

	MaxTextureSize int
	Mipmaps        bool

	BoxColor math.Vec3
}

// Stats describes the last rendered frame.
type Stats struct {
	Frame     uint64
	Models    int
	DrawCalls int
	Lights    int
}

// Renderer owns the GPU state shared by all models: the render targets,
// the default textures and the texture cache.
type Renderer struct {
	cfg Config
	log *zap.Logger
	lib *shader.Library

	gbuffer *framebuffer.Framebuffer
	target  *framebuffer.Framebuffer

	defaults *texture.Defaults
	textures *texture.Cache

	quad  *quad
	lines *lines
	bbox  *shader.Program

	stats Stats
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, lib *shader.Library, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.BoxColor == (math.Vec3{}) {
		cfg.BoxColor = math.Vec3{X: 1, Y: 0.6}
	}
	r := &Renderer{cfg: cfg, log: log, lib: lib}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Bool("deferred", cfg.Deferred),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	var err error
	r.target, err = framebuffer.New(int32(cfg.Width), int32(cfg.Height))
	if err != nil {
		return nil, fmt.Errorf("color target: %w", err)
	}
	if cfg.Deferred {
		r.gbuffer, err = framebuffer.NewGBuffer(int32(cfg.Width), int32(cfg.Height))
		if err != nil {
			r.target.Destroy()
			return nil, fmt.Errorf("g-buffer: %w", err)
		}
	}

	r.defaults = texture.NewDefaults()
	r.textures = texture.NewCache(cfg.MaxTextureSize, cfg.Mipmaps, log.Named("texture"))
	r.quad = newQuad()
	r.lines = newLines()

	r.bbox = shader.NewProgram(lib, shader.BoundingBox, log)
	if err := r.bbox.Link(); err != nil {
		log.Warn("bounding box overlay disabled", zap.Error(err))
	}

	return r, nil
}

// ProgramFactory returns a factory creating GLSL programs that read their
// stages through lib.
func ProgramFactory(lib *shader.Library, log *zap.Logger) scene.ProgramFactory {
	return func(src shader.Source) scene.Program {
		return shader.NewProgram(lib, src, log)
	}
}

// Deferred reports whether the geometry and lighting passes are used.
func (r *Renderer) Deferred() bool { return r.cfg.Deferred }

// SetClearColor sets the background colour.
func (r *Renderer) SetClearColor(c math.Vec3) { r.cfg.ClearColor = c }

// ClearColor returns the background colour.
func (r *Renderer) ClearColor() math.Vec3 { return r.cfg.ClearColor }

// Stats returns the statistics of the last frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Texture returns the colour texture holding the last frame. Its rows are
// bottom first.
func (r *Renderer) Texture() uint32 { return r.target.ColorTexture() }

// Size returns the render target size.
func (r *Renderer) Size() (width, height int) {
	w, h := r.target.Size()
	return int(w), int(h)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if width == r.cfg.Width && height == r.cfg.Height {
		return
	}
	r.cfg.Width = width
	r.cfg.Height = height
	r.target.Resize(int32(width), int32(height))
	if r.gbuffer != nil {
		r.gbuffer.Resize(int32(width), int32(height))
	}
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Render draws the registry's enabled models from the active camera into
// the colour target. A selected model gets a bounding box overlay.
func (r *Renderer) Render(reg *scene.Registry, selected scene.ID) {
	_, cam := reg.ActiveCamera()
	if cam == nil {
		return
	}
	r.Resize(reg.Resolution())

	r.stats = Stats{Frame: r.stats.Frame + 1}
	view := cam.Uniforms()
	items := reg.DrawList()

	if r.cfg.Deferred {
		r.geometryPass(items, view)
		r.lightingPass(reg, view)
	} else {
		r.forwardPass(items, view)
	}
	r.overlayPass(reg, selected, view)

	r.target.Unbind()
}

func (r *Renderer) geometryPass(items []scene.DrawItem, view camera.Uniforms) {
	r.gbuffer.Bind()
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	r.gbuffer.Clear(0, 0, 0, 0)
	r.drawModels(items, view)
}

// lightingPass accumulates one fullscreen quad per enabled light and then
// copies the geometry depth so later passes are occluded by the models.
func (r *Renderer) lightingPass(reg *scene.Registry, view camera.Uniforms) {
	r.target.Bind()
	r.clear()

	if id, prog, ok := reg.LightingProgram(); ok {
		p, isGL := prog.(*shader.Program)
		if !isGL {
			r.log.Warn("lighting program is not a GLSL program", zap.Uint32("id", uint32(id)))
		} else {
			p.Use()
			for unit, name := range framebuffer.GBufferSamplers {
				p.SetInt(name, int32(unit))
			}
			r.gbuffer.BindTextures()
			p.SetVec3("view_pos", view.Position)

			gl.Disable(gl.DEPTH_TEST)
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.ONE, gl.ONE)
			for _, l := range reg.EnabledLights() {
				setLight(p, l.Uniforms())
				r.quad.draw()
				r.stats.Lights++
				r.stats.DrawCalls++
			}
			gl.Disable(gl.BLEND)
		}
	}

	r.gbuffer.BlitDepth(r.target)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *Renderer) forwardPass(items []scene.DrawItem, view camera.Uniforms) {
	r.target.Bind()
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	r.clear()
	r.drawModels(items, view)
}

func (r *Renderer) clear() {
	c := r.cfg.ClearColor
	r.target.Clear(c.X, c.Y, c.Z, 1)
}

func (r *Renderer) drawModels(items []scene.DrawItem, view camera.Uniforms) {
	for _, it := range items {
		p, ok := it.Program.(*shader.Program)
		if !ok {
			continue
		}
		mesh := r.mesh(it.Model)
		if mesh.Empty() {
			continue
		}

		p.Use()
		setCamera(p, view)
		p.SetMat4("model_mat", it.Model.ModelOriginMatrix())
		p.SetMat4("normal_mat", it.Model.NormalMatrix())
		bindSamplers(p)

		mesh.Bind()
		for _, o := range mesh.Objects() {
			r.bindMaterial(p, it.Model, mesh, o.Material)
			mesh.DrawObject(o)
			r.stats.DrawCalls++
		}
		r.stats.Models++
	}
	gl.BindVertexArray(0)
}

// mesh returns the GPU buffers of m, uploading them on first use.
func (r *Renderer) mesh(m *model.Model) *Mesh {
	if mesh, ok := m.Resources().(*Mesh); ok {
		return mesh
	}
	mesh := UploadMesh(m.Data())
	m.SetResources(mesh)
	r.log.Debug("mesh uploaded", zap.String("model", m.Name()), zap.Int("objects", len(mesh.Objects())))
	return mesh
}

func (r *Renderer) overlayPass(reg *scene.Registry, selected scene.ID, view camera.Uniforms) {
	if selected == scene.NoID || !r.bbox.Valid() {
		return
	}
	m, ok := reg.Model(selected)
	if !ok || !m.Enabled || !m.Open() {
		return
	}

	lo, hi := m.WorldBounds()
	r.lines.update(debug.BoxLines(debug.Pad(picking.NewAABB(lo, hi), debug.DefaultBoxPadding)))

	r.target.Bind()
	r.bbox.Use()
	r.bbox.SetMat4("model_mat", math.Identity())
	r.bbox.SetMat4("view_mat", view.View)
	r.bbox.SetMat4("projection_mat", view.Projection)
	r.bbox.SetVec3("line_color", r.cfg.BoxColor)
	r.lines.draw()
	r.stats.DrawCalls++
}

func setCamera(p *shader.Program, u camera.Uniforms) {
	p.SetVec3("view_pos", u.Position)
	p.SetVec3("view_dir", u.Direction)
	p.SetVec3("up_dir", u.Up)
	p.SetMat4("view_mat", u.View)
	p.SetMat4("projection_mat", u.Projection)
}

func setLight(p *shader.Program, u lighting.Uniforms) {
	p.SetInt("u_light_type", int32(u.Type))
	p.SetVec3("u_light_direction", u.Direction)
	p.SetVec3("u_light_position", u.Position)
	p.SetVec3("u_light_attenuation", u.Attenuation)
	p.SetVec2("u_light_cutoff", u.Cutoff)
	p.SetVec3("u_ambient", u.Ambient)
	p.SetVec3("u_diffuse", u.Diffuse)
	p.SetVec3("u_specular", u.Specular)
	p.SetFloat("u_shininess", u.Shininess)
}

// Snapshot reads the last frame back as a top-down image.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	w, h := r.target.Size()
	return debug.FromPixels(r.target.ReadPixels(), int(w), int(h))
}

// Present copies the last frame to the window, scaled to width x height.
func (r *Renderer) Present(width, height int) {
	r.target.BlitToScreen(int32(width), int32(height))
}

// ForgetTextures drops every cached texture so they are read again from
// disk on the next frame.
func (r *Renderer) ForgetTextures() {
	r.textures.Release()
}

// Close cleans up renderer resources.
func (r *Renderer) Close() error {
	r.log.Info("closing renderer")
	r.textures.Release()
	r.defaults.Release()
	r.quad.release()
	r.lines.release()
	r.bbox.Release()
	if r.gbuffer != nil {
		r.gbuffer.Destroy()
	}
	r.target.Destroy()
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x during teardown", code)
	}
	return nil
}
