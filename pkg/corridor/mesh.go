package corridor

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is an indexed triangle mesh for one corridor layer. Vertices is
// flat with 3 floats per vertex (x,y,z); Indices holds 3 uint32 per
// triangle. Normals is populated by ComputeNormals.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Layer    string    `json:"layer"`    // corridor layer this mesh renders
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(p v3.Vec) uint32 {
	idx := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
	return idx
}

// AddTriangle appends one triangle by vertex indices.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Vertex returns the vertex at the given index.
func (m *Mesh) Vertex(i uint32) v3.Vec {
	return v3.Vec{
		X: float64(m.Vertices[3*i]),
		Y: float64(m.Vertices[3*i+1]),
		Z: float64(m.Vertices[3*i+2]),
	}
}

// Triangles expands the indexed mesh into triangle values for
// consumers that want a soup (export, TIN construction).
func (m *Mesh) Triangles() []sdf.Triangle3 {
	tris := make([]sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, sdf.Triangle3{
			m.Vertex(m.Indices[i]),
			m.Vertex(m.Indices[i+1]),
			m.Vertex(m.Indices[i+2]),
		})
	}
	return tris
}

// ComputeNormals fills Normals with per-vertex normals, averaging the
// face normals of the incident triangles (area weighted via the raw
// cross product).
func (m *Mesh) ComputeNormals() {
	sums := make([]v3.Vec, m.VertexCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertex(m.Indices[i])
		b := m.Vertex(m.Indices[i+1])
		c := m.Vertex(m.Indices[i+2])
		n := b.Sub(a).Cross(c.Sub(a))
		for j := 0; j < 3; j++ {
			idx := m.Indices[i+j]
			sums[idx] = sums[idx].Add(n)
		}
	}

	m.Normals = make([]float32, 0, len(m.Vertices))
	for _, n := range sums {
		if n.Length() > 0 {
			n = n.Normalize()
		}
		m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
}
