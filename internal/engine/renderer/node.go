package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cutplane/internal/host"
	"github.com/Faultbox/cutplane/pkg/geometry"
	"github.com/Faultbox/cutplane/pkg/math"
)

// node is a GL-backed host.Node.
type node struct {
	r           *Renderer
	name        string
	kind        host.Kind
	cameraSpace bool
	lit         bool

	vao, vbo uint32
	mode     uint32
	count    int32
	capacity int // floats the position buffer can hold

	visible   bool
	material  host.Material
	transform math.Mat4

	scratch  []float32
	disposed bool
}

func newNode(r *Renderer, spec host.NodeSpec, cameraSpace bool) *node {
	n := &node{
		r:           r,
		name:        spec.Name,
		kind:        spec.Kind,
		cameraSpace: cameraSpace,
		visible:     spec.Visible,
		material:    spec.Material,
		transform:   spec.Transform,
	}

	gl.GenVertexArrays(1, &n.vao)
	gl.GenBuffers(1, &n.vbo)

	switch spec.Kind {
	case host.KindBox:
		n.lit = true
		pos, nrm := geometry.BoxTriangles(spec.Size)
		n.mode = gl.TRIANGLES
		n.upload(pos, nrm, gl.STATIC_DRAW)
	case host.KindPoint:
		n.mode = gl.POINTS
		n.SetPositions(spec.Positions)
	case host.KindMesh:
		n.mode = gl.TRIANGLES
		n.SetPositions(spec.Positions)
	case host.KindSegments:
		n.mode = gl.LINES
		n.SetPositions(spec.Positions)
	default:
		n.mode = gl.LINE_STRIP
		n.SetPositions(spec.Positions)
	}
	return n
}

func newMeshNode(r *Renderer, name string, positions, normals []float32, material host.Material, transform math.Mat4) *node {
	n := &node{
		r:         r,
		name:      name,
		kind:      host.KindMesh,
		lit:       len(normals) == len(positions),
		mode:      gl.TRIANGLES,
		visible:   true,
		material:  material,
		transform: transform,
	}
	gl.GenVertexArrays(1, &n.vao)
	gl.GenBuffers(1, &n.vbo)
	if !n.lit {
		normals = nil
	}
	n.upload(positions, normals, gl.STATIC_DRAW)
	return n
}

// upload replaces the buffer with interleaved position/normal data.
func (n *node) upload(positions, normals []float32, usage uint32) {
	stride := int32(3 * 4)
	data := positions
	if normals != nil {
		stride = 6 * 4
		data = make([]float32, 0, len(positions)*2)
		for i := 0; i+2 < len(positions); i += 3 {
			data = append(data, positions[i:i+3]...)
			data = append(data, normals[i:i+3]...)
		}
	}

	gl.BindVertexArray(n.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, n.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usage)
	}
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	if normals != nil {
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
		gl.EnableVertexAttribArray(1)
	} else {
		gl.DisableVertexAttribArray(1)
		gl.VertexAttrib3f(1, 0, 0, 1)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	n.count = int32(len(positions) / 3)
	n.capacity = len(data)
}

// SetPositions rewrites the vertex buffer in place when it is large enough.
func (n *node) SetPositions(positions []math.Vec3) {
	if n.disposed {
		return
	}
	n.scratch = n.scratch[:0]
	for _, p := range positions {
		f := p.Float32()
		n.scratch = append(n.scratch, f[0], f[1], f[2])
	}

	if len(n.scratch) == 0 {
		n.count = 0
		return
	}
	if n.capacity == 0 || len(n.scratch) > n.capacity {
		n.upload(n.scratch, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, n.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(n.scratch)*4, gl.Ptr(n.scratch))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	n.count = int32(len(positions))
}

func (n *node) SetVisible(visible bool) {
	if n.disposed {
		return
	}
	n.visible = visible
}

func (n *node) SetTransform(transform math.Mat4) {
	if n.disposed {
		return
	}
	n.transform = transform
}

func (n *node) SetMaterial(material host.Material) {
	if n.disposed {
		return
	}
	n.material = material
}

// Dispose deletes the GL buffers and removes the node from the renderer.
func (n *node) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	gl.DeleteBuffers(1, &n.vbo)
	gl.DeleteVertexArrays(1, &n.vao)
	n.r.remove(n)
	n.r.log.Debug("node disposed", zap.String("name", n.name), zap.Stringer("kind", n.kind))
}
