package math

import (
	gomath "math"
	"testing"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < epsilon
}

func TestVec3_AddSub(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	sum := a.Add(b)
	if sum != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v, expected {5 7 9}", sum)
	}

	diff := b.Sub(a)
	if diff != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v, expected {3 3 3}", diff)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}

	z := x.Cross(y)
	if z != (Vec3{0, 0, 1}) {
		t.Errorf("X cross Y = %v, expected {0 0 1}", z)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()
	if !approxEqual(n.Length(), 1) {
		t.Errorf("normalized length = %v, expected 1", n.Length())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("normalizing zero vector = %v, expected zero", zero)
	}
}

func TestMat4_IdentityMul(t *testing.T) {
	m := Translate(1, 2, 3)
	r := Identity().Mul(m)
	if r != m {
		t.Errorf("Identity * M = %v, expected %v", r, m)
	}
}

func TestMat4_TranslatePoint(t *testing.T) {
	m := Translate(10, 20, 30)
	p := m.TransformPoint(Vec3{1, 1, 1})
	if p != (Vec3{11, 21, 31}) {
		t.Errorf("translated point = %v, expected {11 21 31}", p)
	}
}

func TestMat4_LookAtOrigin(t *testing.T) {
	// Camera at +Z looking at origin: the origin should land on the -Z
	// axis in view space.
	view := LookAt(Vec3{0, 0, 10}, Vec3{}, Vec3{0, 1, 0})
	p := view.TransformPoint(Vec3{})
	if !approxEqual(p.X, 0) || !approxEqual(p.Y, 0) || !approxEqual(p.Z, -10) {
		t.Errorf("origin in view space = %v, expected {0 0 -10}", p)
	}
}

func TestMat4_PerspectiveDepth(t *testing.T) {
	proj := Perspective(gomath.Pi/4, 1, 1, 100)

	// A point on the near plane maps to NDC z = -1.
	near := proj.TransformPoint(Vec3{0, 0, -1})
	if !approxEqual(near.Z, -1) {
		t.Errorf("near plane NDC z = %v, expected -1", near.Z)
	}

	// A point on the far plane maps to NDC z = +1.
	far := proj.TransformPoint(Vec3{0, 0, -100})
	if !approxEqual(far.Z, 1) {
		t.Errorf("far plane NDC z = %v, expected 1", far.Z)
	}
}
