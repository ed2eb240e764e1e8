package mesh

import "github.com/go-gl/mathgl/mgl64"

// Normal returns the unit normal of the triangle (v0, v1, v2) following the
// right-hand rule. Degenerate triangles yield the zero vector.
func Normal(v0, v1, v2 mgl64.Vec3) mgl64.Vec3 {
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	l := n.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{n[0] / l, n[1] / l, n[2] / l}
}
