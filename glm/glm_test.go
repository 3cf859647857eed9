package glm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarHelpers(t *testing.T) {
	assert.Equal(t, 3, Clamp(5, 0, 3))
	assert.Equal(t, float32(-1), Clamp[float32](-2, -1, 1))

	assert.Equal(t, float32(0), InverseLerp[float32](1, 1, 5))
	assert.InDelta(t, 0.5, InverseLerp[float32](-0.25, 0.25, 0), 1e-6)
	assert.Equal(t, float32(1), InverseLerp[float32](0, 1, 3))

	assert.Equal(t, float32(15), Lerp[float32](10, 20, 0.5))

	assert.Equal(t, float32(0), SmootherStep[float32](-1))
	assert.Equal(t, float32(1), SmootherStep[float32](2))
	assert.InDelta(t, 0.5, SmootherStep[float32](0.5), 1e-6)
	assert.InDelta(t, 0.5, SmoothStep[float64](0.5), 1e-9)
}

func TestMat4Translate(t *testing.T) {
	m := IdentityMat4[float32]().Translate(1, 2, 3)
	p := m.Transform(Vec4f{1, 1, 1, 1})
	assert.Equal(t, Vec4f{2, 3, 4, 1}, p)

	// directions are not affected by translation
	d := m.Transform(Vec4f{1, 0, 0, 0})
	assert.Equal(t, Vec4f{1, 0, 0, 0}, d)
}

func TestMat4Rotations(t *testing.T) {
	quarter := DegToRad(90.0)

	cases := []struct {
		name   string
		mat    Mat4f
		input  Vec4f
		expect Vec4f
	}{
		{"x", RotationXMat4[float32](quarter), Vec4f{0, 1, 0, 1}, Vec4f{0, 0, 1, 1}},
		{"y", RotationYMat4[float32](quarter), Vec4f{1, 0, 0, 1}, Vec4f{0, 0, -1, 1}},
		{"z", RotationZMat4[float32](quarter), Vec4f{1, 0, 0, 1}, Vec4f{0, 1, 0, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual := tc.mat.Transform(tc.input)
			for idx := range actual {
				assert.InDelta(t, tc.expect[idx], actual[idx], 1e-4, "component %d", idx)
			}
		})
	}
}

func TestMat4RotateMethods(t *testing.T) {
	quarter := DegToRad(90.0)
	base := IdentityMat4[float32]().Translate(1, 2, 3)

	cases := []struct {
		name     string
		actual   Mat4f
		expected Mat4f
	}{
		{"x", base.RotateX(quarter), base.Mul(RotationXMat4[float32](quarter))},
		{"y", base.RotateY(quarter), base.Mul(RotationYMat4[float32](quarter))},
		{"z", base.RotateZ(quarter), base.Mul(RotationZMat4[float32](quarter))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.actual)
		})
	}

	// rotating the translated x axis around z moves it onto y
	p := base.RotateZ(quarter).Transform(Vec4f{1, 0, 0, 1})
	expected := Vec4f{1, 3, 3, 1}
	for idx := range p {
		assert.InDelta(t, expected[idx], p[idx], 1e-4, "component %d", idx)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective[float32](DegToRad(65.0), 16.0/9.0, 0.1, 1000)

	near := proj.Transform(Vec4f{0, 0, -0.1, 1})
	far := proj.Transform(Vec4f{0, 0, -1000, 1})

	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-5)
}

func TestOrthoMapsScreenCorners(t *testing.T) {
	proj := Ortho[float32](0, 800, 600, 0, -1, 1)

	topLeft := proj.Transform(Vec4f{0, 0, 0, 1})
	bottomRight := proj.Transform(Vec4f{800, 600, 0, 1})

	assert.InDelta(t, -1, topLeft[0], 1e-6)
	assert.InDelta(t, 1, topLeft[1], 1e-6)
	assert.InDelta(t, 1, bottomRight[0], 1e-6)
	assert.InDelta(t, -1, bottomRight[1], 1e-6)
}

func TestFrustumCulling(t *testing.T) {
	proj := Perspective[float32](DegToRad(90.0), 1, 0.1, 100)
	frustum := FrustumOf(proj)

	require.True(t, frustum.IntersectsAABB(Vec3f{-1, -1, -11}, Vec3f{1, 1, -9}), "box in front")
	assert.False(t, frustum.IntersectsAABB(Vec3f{-1, -1, 5}, Vec3f{1, 1, 6}), "box behind")
	assert.False(t, frustum.IntersectsAABB(Vec3f{-1, -1, -300}, Vec3f{1, 1, -200}), "box beyond far plane")
	assert.False(t, frustum.IntersectsAABB(Vec3f{-100, -1, -11}, Vec3f{-90, 1, -9}), "box far left")

	// a huge box around the camera is always visible
	assert.True(t, frustum.IntersectsAABB(Vec3f{-500, -500, -500}, Vec3f{500, 500, 500}))
}

func TestVec3(t *testing.T) {
	v := Vec3f{3, 0, 4}
	assert.Equal(t, float32(5), v.Length())
	assert.InDelta(t, 1, v.Normalize().Length(), 1e-6)
	assert.Equal(t, Vec3f{}, Vec3f{}.Normalize())

	x := Vec3f{1, 0, 0}
	y := Vec3f{0, 1, 0}
	assert.Equal(t, Vec3f{0, 0, 1}, x.Cross(y))
}

func TestDegRad(t *testing.T) {
	assert.InDelta(t, math.Pi, float64(DegToRad(180.0)), 1e-6)
	assert.InDelta(t, 90, RadToDeg[float64](Rad(math.Pi/2)), 1e-4)
}
