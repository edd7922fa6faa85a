package graph

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LocalMatrix composes Position, Rotation and Scale (T * R * S).
func (b *Object3D) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(b.Position.X(), b.Position.Y(), b.Position.Z())
	r := b.Rotation.Normalize().Mat4()
	s := mgl32.Scale3D(b.Scale.X(), b.Scale.Y(), b.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// MatrixWorld returns the world matrix computed by the last UpdateMatrixWorld.
func (b *Object3D) MatrixWorld() mgl32.Mat4 {
	return b.matrixWorld
}

// WorldPosition returns the translation part of MatrixWorld.
func (b *Object3D) WorldPosition() mgl32.Vec3 {
	return b.matrixWorld.Col(3).Vec3()
}

// UpdateMatrixWorld recomputes the world matrix of b and its whole subtree
// from the parent's current world matrix.
func (b *Object3D) UpdateMatrixWorld() {
	parentWorld := mgl32.Ident4()
	if p := b.GetParent(); p != nil {
		parentWorld = p.Base().matrixWorld
	}
	b.updateWorld(parentWorld)
}

func (b *Object3D) updateWorld(parentWorld mgl32.Mat4) {
	b.matrixWorld = parentWorld.Mul4(b.LocalMatrix())
	for _, c := range b.GetChildren() {
		c.Base().updateWorld(b.matrixWorld)
	}
}

// LookAt rotates b so its -Z axis points at target, in parent space.
func (b *Object3D) LookAt(target mgl32.Vec3) {
	if target.ApproxEqual(b.Position) {
		return
	}
	up := mgl32.Vec3{0, 1, 0}
	dir := target.Sub(b.Position).Normalize()
	if math.Abs(float64(dir.Dot(up))) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(b.Position, target, up)
	b.Rotation = mgl32.Mat4ToQuat(view.Inv()).Normalize()
}

// EulerDegrees converts XYZ Euler angles in degrees to a quaternion.
func EulerDegrees(v mgl32.Vec3) mgl32.Quat {
	return mgl32.AnglesToQuat(
		mgl32.DegToRad(v.X()),
		mgl32.DegToRad(v.Y()),
		mgl32.DegToRad(v.Z()),
		mgl32.XYZ,
	)
}

// Decompose splits an affine matrix without shear into translation,
// rotation and scale.
func Decompose(m mgl32.Mat4) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	pos := m.Col(3).Vec3()
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	if sx == 0 || sy == 0 || sz == 0 {
		return pos, mgl32.QuatIdent(), mgl32.Vec3{sx, sy, sz}
	}
	r := mgl32.Mat4FromCols(
		m.Col(0).Mul(1/sx),
		m.Col(1).Mul(1/sy),
		m.Col(2).Mul(1/sz),
		mgl32.Vec4{0, 0, 0, 1},
	)
	return pos, mgl32.Mat4ToQuat(r).Normalize(), mgl32.Vec3{sx, sy, sz}
}
