// Package renderer draws the scene with OpenGL and implements the scene and
// camera contracts of the cutting-plane control.
package renderer

import (
	"fmt"
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cutplane/internal/engine/camera"
	"github.com/Faultbox/cutplane/internal/engine/framebuffer"
	"github.com/Faultbox/cutplane/internal/engine/lighting"
	"github.com/Faultbox/cutplane/internal/engine/shader"
	"github.com/Faultbox/cutplane/internal/host"
	"github.com/Faultbox/cutplane/internal/logger"
	"github.com/Faultbox/cutplane/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// PointSize is the size of point markers in pixels.
	PointSize float32
	// Light shades boxes and meshes. The zero value selects
	// lighting.DefaultKeyLight.
	Light lighting.KeyLight
}

// Renderer owns the GL program and every node it draws. It must be used on
// the thread that owns the GL context.
type Renderer struct {
	config  Config
	program *shader.Program
	orbit   *camera.OrbitCamera
	log     *zap.Logger

	// Viewport size in window coordinates, for the camera aspect.
	viewW, viewH float64

	world  []*node
	attach []*node

	capture *framebuffer.Framebuffer
}

// New creates a renderer. It must be called after the GL context exists.
func New(cfg Config, orbit *camera.OrbitCamera) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if cfg.PointSize == 0 {
		cfg.PointSize = 8
	}
	if cfg.Light == (lighting.KeyLight{}) {
		cfg.Light = lighting.DefaultKeyLight()
	}

	r := &Renderer{
		config: cfg,
		orbit:  orbit,
		log:    logger.Named("renderer"),
		viewW:  float64(cfg.Width),
		viewH:  float64(cfg.Height),
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.MULTISAMPLE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.93, 0.93, 0.95, 1.0)

	var err error
	r.program, err = shader.NewProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.Resize(cfg.Width, cfg.Height, cfg.Width, cfg.Height)
	return r, nil
}

// Close releases every node and the program.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, n := range append(append([]*node(nil), r.world...), r.attach...) {
		n.Dispose()
	}
	if r.capture != nil {
		r.capture.Destroy()
	}
	r.program.Delete()
}

// Resize updates the viewport. Window size drives the aspect ratio; the
// drawable size is the GL viewport.
func (r *Renderer) Resize(windowW, windowH, drawableW, drawableH int) {
	r.viewW, r.viewH = float64(windowW), float64(windowH)
	gl.Viewport(0, 0, int32(drawableW), int32(drawableH))
	r.config.Width, r.config.Height = drawableW, drawableH
	r.log.Debug("renderer resized",
		zap.Int("width", windowW),
		zap.Int("height", windowH),
		zap.Int("drawable_width", drawableW),
		zap.Int("drawable_height", drawableH),
	)
}

// Transform returns the current camera matrices.
func (r *Renderer) Transform() host.CameraTransform {
	aspect := 1.0
	if r.viewH > 0 {
		aspect = r.viewW / r.viewH
	}
	return r.orbit.Transform(aspect)
}

// Add creates a world-space node.
func (r *Renderer) Add(spec host.NodeSpec) host.Node {
	n := newNode(r, spec, false)
	r.world = append(r.world, n)
	return n
}

// Attach creates a node in camera space.
func (r *Renderer) Attach(spec host.NodeSpec) host.Node {
	n := newNode(r, spec, true)
	r.attach = append(r.attach, n)
	return n
}

// AddMesh uploads a lit triangle mesh with per-vertex normals.
func (r *Renderer) AddMesh(name string, positions, normals []float32, material host.Material, transform math.Mat4) host.Node {
	n := newMeshNode(r, name, positions, normals, material, transform)
	r.world = append(r.world, n)
	return n
}

// Nodes returns the number of live world and camera nodes.
func (r *Renderer) Nodes() (world, attached int) {
	return len(r.world), len(r.attach)
}

func (r *Renderer) remove(n *node) {
	list := &r.world
	if n.cameraSpace {
		list = &r.attach
	}
	for i, live := range *list {
		if live == n {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}

// Render draws opaque world nodes, then transparent ones back to front by
// render order, then camera-space overlays.
func (r *Renderer) Render() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := r.Transform()
	viewProj := view.Projection.Mul(view.View())

	r.program.Use()
	gl.Uniform1f(r.program.Uniform("uPointSize"), r.config.PointSize)
	light := r.config.Light.Direction()
	gl.Uniform3f(r.program.Uniform("uLightDir"), float32(light.X), float32(light.Y), float32(light.Z))
	gl.Uniform1f(r.program.Uniform("uAmbient"), float32(r.config.Light.Ambient))

	var transparent []*node
	for _, n := range r.world {
		if !n.visible {
			continue
		}
		if n.material.Transparent() {
			transparent = append(transparent, n)
			continue
		}
		r.draw(n, viewProj)
	}

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].material.RenderOrder < transparent[j].material.RenderOrder
	})
	for _, n := range transparent {
		r.draw(n, viewProj)
	}

	overlays := make([]*node, 0, len(r.attach))
	for _, n := range r.attach {
		if n.visible {
			overlays = append(overlays, n)
		}
	}
	sort.SliceStable(overlays, func(i, j int) bool {
		return overlays[i].material.RenderOrder < overlays[j].material.RenderOrder
	})
	for _, n := range overlays {
		r.draw(n, view.Projection)
	}

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (r *Renderer) draw(n *node, viewProj math.Mat4) {
	if n.count == 0 {
		return
	}
	if n.material.DepthTest || !n.cameraSpace {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	mvp := viewProj.Mul(n.transform).Float32()
	model := n.transform.Float32()
	gl.UniformMatrix4fv(r.program.Uniform("uMVP"), 1, false, &mvp[0])
	gl.UniformMatrix4fv(r.program.Uniform("uModel"), 1, false, &model[0])

	c := n.material.Color
	gl.Uniform4f(r.program.Uniform("uColor"), float32(c.R), float32(c.G), float32(c.B), float32(n.material.Opacity))
	lit := int32(0)
	if n.lit {
		lit = 1
	}
	gl.Uniform1i(r.program.Uniform("uLit"), lit)

	gl.BindVertexArray(n.vao)
	gl.DrawArrays(n.mode, 0, n.count)
	gl.BindVertexArray(0)
}

// Capture renders one frame into an offscreen target the size of the
// drawable and returns its RGBA pixels, bottom row first.
func (r *Renderer) Capture() ([]byte, int, int, error) {
	w, h := int32(r.config.Width), int32(r.config.Height)
	if r.capture == nil {
		fb, err := framebuffer.New(w, h)
		if err != nil {
			return nil, 0, 0, err
		}
		r.capture = fb
	}
	r.capture.Resize(w, h)

	restore := r.capture.Bind()
	r.Render()
	restore()

	fw, fh := r.capture.Size()
	return r.capture.ReadPixels(), int(fw), int(fh), nil
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uMVP;
uniform mat4 uModel;
uniform float uPointSize;

out vec3 vNormal;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	gl_PointSize = uPointSize;
	vNormal = mat3(uModel) * aNormal;
}
`

const fragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec4 uColor;
uniform bool uLit;
uniform vec3 uLightDir;
uniform float uAmbient;

out vec4 FragColor;

void main() {
	vec3 color = uColor.rgb;
	if (uLit) {
		vec3 n = normalize(vNormal);
		float diffuse = abs(dot(n, normalize(uLightDir)));
		color *= uAmbient + (1.0 - uAmbient) * diffuse;
	}
	FragColor = vec4(color, uColor.a);
}
`
