package pid

import "fmt"

// Vec3 is a 3-component vector, used as error, rate and gain type of the
// vector controllers.
type Vec3[F Float] struct {
	X F `json:"x" yaml:"x"`
	Y F `json:"y" yaml:"y"`
	Z F `json:"z" yaml:"z"`
}

// Vec3f is the single precision vector.
type Vec3f = Vec3[float32]

// Vec3d is the double precision vector.
type Vec3d = Vec3[float64]

func NewVec3[F Float](x, y, z F) Vec3[F] {
	return Vec3[F]{X: x, Y: y, Z: z}
}

// Splat returns a vector with all components set to v.
func Splat[F Float](v F) Vec3[F] {
	return Vec3[F]{X: v, Y: v, Z: v}
}

func (v Vec3[F]) Add(o Vec3[F]) Vec3[F] {
	return Vec3[F]{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3[F]) Sub(o Vec3[F]) Vec3[F] {
	return Vec3[F]{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3[F]) Scale(s F) Vec3[F] {
	return Vec3[F]{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Mul multiplies component-wise.
func (v Vec3[F]) Mul(o Vec3[F]) Vec3[F] {
	return Vec3[F]{X: v.X * o.X, Y: v.Y * o.Y, Z: v.Z * o.Z}
}

func (v Vec3[F]) Dot(o Vec3[F]) F {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3[F]) Magnitude() F {
	return sqrt(v.Dot(v))
}

// ClampMagnitude scales v down so that its magnitude does not exceed max.
func (v Vec3[F]) ClampMagnitude(max F) Vec3[F] {
	sqrMagnitude := v.Dot(v)
	if sqrMagnitude > max*max {
		return v.Scale(max / sqrt(sqrMagnitude))
	}
	return v
}

// ClampComponents clamps each component into [min, max] of the same axis.
func (v Vec3[F]) ClampComponents(min, max Vec3[F]) Vec3[F] {
	return Vec3[F]{
		X: clamp(v.X, min.X, max.X),
		Y: clamp(v.Y, min.Y, max.Y),
		Z: clamp(v.Z, min.Z, max.Z),
	}
}

// IsNaN reports whether any component is NaN.
func (v Vec3[F]) IsNaN() bool {
	return isNaN(v.X) || isNaN(v.Y) || isNaN(v.Z)
}

func (v Vec3[F]) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Components returns the vector as a slice in x, y, z order.
func (v Vec3[F]) Components() []F {
	return []F{v.X, v.Y, v.Z}
}

func (v Vec3[F]) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
