package geom

import "math"

type Element = float32

type Vector2 struct {
	X Element
	Y Element
}

type Vector3 struct {
	X Element
	Y Element
	Z Element
}

func NewVector3(x, y, z Element) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

func NewVector3FromArray(arr [3]Element) *Vector3 {
	return &Vector3{X: arr[0], Y: arr[1], Z: arr[2]}
}

func NewVector3FromSlice(arr []Element) *Vector3 {
	return &Vector3{X: arr[0], Y: arr[1], Z: arr[2]}
}

func (v *Vector3) Sub(v2 *Vector3) *Vector3 {
	return &Vector3{X: v.X - v2.X, Y: v.Y - v2.Y, Z: v.Z - v2.Z}
}

func (v *Vector3) Len() Element {
	return Element(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Min returns the component-wise minimum.
func (v *Vector3) Min(v2 *Vector3) *Vector3 {
	return &Vector3{X: min(v.X, v2.X), Y: min(v.Y, v2.Y), Z: min(v.Z, v2.Z)}
}

// Max returns the component-wise maximum.
func (v *Vector3) Max(v2 *Vector3) *Vector3 {
	return &Vector3{X: max(v.X, v2.X), Y: max(v.Y, v2.Y), Z: max(v.Z, v2.Z)}
}

// Vector4 holds RGBA colors and quaternions.
type Vector4 struct {
	X Element
	Y Element
	Z Element
	W Element
}

// Quaternion (x, y, z, w) in glTF order.
type Quaternion = Vector4

func NewQuaternion(x, y, z, w Element) *Quaternion {
	return &Quaternion{X: x, Y: y, Z: z, W: w}
}

func NewQuaternionFromArray(arr [4]Element) *Quaternion {
	return &Quaternion{X: arr[0], Y: arr[1], Z: arr[2], W: arr[3]}
}

// EulerXYZ returns the rotation as intrinsic X, Y, Z angles in radians.
func (q *Quaternion) EulerXYZ() *Vector3 {
	m := NewRotationMatrix4FromQuaternion(q)
	m11, m12, m13 := float64(m[0]), float64(m[4]), float64(m[8])
	m22, m23 := float64(m[5]), float64(m[9])
	m32, m33 := float64(m[6]), float64(m[10])

	e := &Vector3{Y: Element(math.Asin(math.Max(-1, math.Min(m13, 1))))}
	if math.Abs(m13) < 0.9999999 {
		e.X = Element(math.Atan2(-m23, m33))
		e.Z = Element(math.Atan2(-m12, m11))
	} else {
		// gimbal lock
		e.X = Element(math.Atan2(m32, m22))
	}
	return e
}
