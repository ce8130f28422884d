package corridor

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestMeshAccessors(t *testing.T) {
	m := &Mesh{Layer: "pavement"}
	if !m.IsEmpty() {
		t.Error("new mesh should be empty")
	}

	a := m.AddVertex(v3.Vec{X: 1, Y: 2, Z: 3})
	b := m.AddVertex(v3.Vec{X: 4, Y: 5, Z: 6})
	c := m.AddVertex(v3.Vec{X: 7, Y: 8, Z: 9})
	if a != 0 || b != 1 || c != 2 {
		t.Errorf("vertex indices = %d, %d, %d; want 0, 1, 2", a, b, c)
	}
	if got := m.Vertex(1); got != (v3.Vec{X: 4, Y: 5, Z: 6}) {
		t.Errorf("Vertex(1) = %+v", got)
	}

	m.AddTriangle(a, b, c)
	if m.IsEmpty() {
		t.Error("mesh with a triangle reported empty")
	}
	if m.TriangleCount() != 1 || m.VertexCount() != 3 {
		t.Errorf("counts = %d tris, %d verts; want 1, 3", m.TriangleCount(), m.VertexCount())
	}

	tris := m.Triangles()
	if len(tris) != 1 {
		t.Fatalf("Triangles() returned %d, want 1", len(tris))
	}
	if tris[0][2] != (v3.Vec{X: 7, Y: 8, Z: 9}) {
		t.Errorf("triangle vertex = %+v", tris[0][2])
	}
}

func TestComputeNormalsFlatQuad(t *testing.T) {
	// A horizontal quad with counter-clockwise winding: every vertex
	// normal is +Z.
	m := &Mesh{}
	m.AddVertex(v3.Vec{X: 0, Y: 0, Z: 0})
	m.AddVertex(v3.Vec{X: 1, Y: 0, Z: 0})
	m.AddVertex(v3.Vec{X: 0, Y: 1, Z: 0})
	m.AddVertex(v3.Vec{X: 1, Y: 1, Z: 0})
	m.AddTriangle(0, 1, 2)
	m.AddTriangle(2, 1, 3)

	m.ComputeNormals()
	if len(m.Normals) != len(m.Vertices) {
		t.Fatalf("normals length = %d, want %d", len(m.Normals), len(m.Vertices))
	}
	for i := 0; i < len(m.Normals); i += 3 {
		nx, ny, nz := m.Normals[i], m.Normals[i+1], m.Normals[i+2]
		if nx != 0 || ny != 0 || nz != 1 {
			t.Errorf("vertex %d normal = (%g, %g, %g), want (0, 0, 1)", i/3, nx, ny, nz)
		}
	}
}

func TestComputeNormalsIsolatedVertex(t *testing.T) {
	m := &Mesh{}
	m.AddVertex(v3.Vec{})
	m.ComputeNormals()
	if m.Normals[0] != 0 || m.Normals[1] != 0 || m.Normals[2] != 0 {
		t.Errorf("isolated vertex normal = (%g, %g, %g), want zero", m.Normals[0], m.Normals[1], m.Normals[2])
	}
}
