package glm

// Frustum holds the six clip planes of a view-projection matrix. Each plane is
// stored as (nx, ny, nz, d) with normals pointing inwards.
type Frustum struct {
	planes [6]Vec4f
}

// FrustumOf extracts the planes from a view-projection matrix using a [0, 1]
// depth range.
func FrustumOf(viewProj Mat4f) Frustum {
	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)

	return Frustum{
		planes: [6]Vec4f{
			r3.Add(r0), // left
			r3.Sub(r0), // right
			r3.Add(r1), // bottom
			r3.Sub(r1), // top
			r2,         // near
			r3.Sub(r2), // far
		},
	}
}

// IntersectsAABB reports whether the axis aligned box is at least partially
// inside the frustum. The test is conservative: boxes near a frustum corner may
// be reported as visible.
func (f Frustum) IntersectsAABB(lo, hi Vec3f) bool {
	for _, plane := range f.planes {
		// pick the corner furthest along the plane normal
		var p Vec3f
		for axis := range 3 {
			if plane[axis] >= 0 {
				p[axis] = hi[axis]
			} else {
				p[axis] = lo[axis]
			}
		}

		if plane.Truncate().Dot(p)+plane[3] < 0 {
			return false
		}
	}

	return true
}
