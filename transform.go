package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ModelMatrix builds translate * rotX * rotY * rotZ * scale.
// Rotation angles are in degrees.
func ModelMatrix(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(rotation.X())))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(rotation.Y())))
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(rotation.Z())))
	return m.Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// ViewMatrix returns a look-at matrix.
func ViewMatrix(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, target, up)
}

// ProjectionMatrix returns a perspective projection; fov is in degrees.
func ProjectionMatrix(fov, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fov), aspect, near, far)
}

// RotatingModel rotates around axis by 50 degrees per second times speed.
func RotatingModel(t, speed float32, axis mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3D(t*mgl32.DegToRad(50*speed), axis.Normalize())
}

// OrbitingCamera looks at the origin from a point circling the Y axis.
func OrbitingCamera(t, radius, height float32) mgl32.Mat4 {
	eye := mgl32.Vec3{
		float32(math.Cos(float64(t))) * radius,
		height,
		float32(math.Sin(float64(t))) * radius,
	}
	return mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// PulseIntensity oscillates between 0 and 1; used to fade a colour to
// black and back.
func PulseIntensity(t, speed float32) float32 {
	return 0.5 * (1 + float32(math.Sin(float64(t*speed*speed))))
}
