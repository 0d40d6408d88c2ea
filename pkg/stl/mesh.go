// Package stl reads STL files into flat vertex buffers.
package stl

// Mesh is a triangle soup: three consecutive vertices form one facet.
type Mesh struct {
	Name string
	// Positions holds xyz triples, 9 floats per triangle.
	Positions []float32
	// Normals holds the facet normal repeated for each of its vertices.
	Normals []float32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Positions) / 9
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

func (m *Mesh) addTriangle(normal [3]float32, v [3][3]float32) {
	for i := 0; i < 3; i++ {
		m.Positions = append(m.Positions, v[i][0], v[i][1], v[i][2])
		m.Normals = append(m.Normals, normal[0], normal[1], normal[2])
	}
}
