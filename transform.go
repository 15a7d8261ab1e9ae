package isotrix

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis selects a principal rotation axis.
type Axis int

const (
	RotX Axis = iota
	RotY
	RotZ
)

// Transform is an affine map over points and vectors. Values are immutable;
// every operation returns a new Transform.
type Transform struct {
	m mgl64.Mat4
}

func IdentTransform() Transform {
	return Transform{m: mgl64.Ident4()}
}

// NewRotation rotates counter-clockwise (right handed) about an axis by theta radians.
func NewRotation(axis Axis, theta float64) Transform {
	switch axis {
	case RotX:
		return Transform{m: mgl64.HomogRotate3DX(theta)}
	case RotY:
		return Transform{m: mgl64.HomogRotate3DY(theta)}
	case RotZ:
		return Transform{m: mgl64.HomogRotate3DZ(theta)}
	}
	panic(fmt.Sprintf("isotrix: unknown rotation axis %d", axis))
}

func NewXRotation(theta float64) Transform { return NewRotation(RotX, theta) }
func NewYRotation(theta float64) Transform { return NewRotation(RotY, theta) }
func NewZRotation(theta float64) Transform { return NewRotation(RotZ, theta) }

func NewTranslation(v Vector3) Transform {
	return Transform{m: mgl64.Translate3D(v.X, v.Y, v.Z)}
}

func TransMatrix(x, y, z float64) Transform {
	return Transform{m: mgl64.Translate3D(x, y, z)}
}

// Compose returns the transform that applies other first, then t.
func (t Transform) Compose(other Transform) Transform {
	return Transform{m: t.m.Mul4(other.m)}
}

// Apply maps a point, including translation.
func (t Transform) Apply(p Point3d) Point3d {
	r := t.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return Point3d{X: r[0], Y: r[1], Z: r[2]}
}

// ApplyVector maps a direction; translation is ignored.
func (t Transform) ApplyVector(v Vector3) Vector3 {
	r := t.m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return Vector3{X: r[0], Y: r[1], Z: r[2]}
}

// ApplyAll maps every point into a new slice.
func (t Transform) ApplyAll(points []Point3d) []Point3d {
	out := make([]Point3d, len(points))
	for i, p := range points {
		out[i] = t.Apply(p)
	}
	return out
}

// Inverse is exact for rotation and translation chains.
func (t Transform) Inverse() Transform {
	return Transform{m: t.m.Inv()}
}

func (t Transform) ApproxEqual(other Transform, eps float64) bool {
	return t.m.ApproxEqualThreshold(other.m, eps)
}

func (t Transform) String() string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}
		for col := 0; col < 4; col++ {
			if col > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", t.m.At(row, col)))
		}
	}
	return sb.String()
}

// isometricRotation gives the fixed 45/45 degree viewing angle.
var isometricRotation = NewXRotation(math.Pi / 4).Compose(NewYRotation(math.Pi / 4))

// MakeTransform builds the scene transform shared by the renderer and the
// editor: rotate about the pivot, tilt isometrically, then move into view space.
// The order matters; the tilt is applied after the user rotation.
func MakeTransform(rotate Vector3, pivot Point3d, viewTranslation Vector3) Transform {
	translateToOrigin := NewTranslation(VectorFromPoint(pivot.Negate()))
	translateBack := NewTranslation(VectorFromPoint(pivot))

	rotation := NewZRotation(rotate.Z).Compose(
		NewYRotation(rotate.Y).Compose(
			NewXRotation(rotate.X)))

	return NewTranslation(viewTranslation).Compose(
		isometricRotation.Compose(
			translateBack.Compose(
				rotation.Compose(
					translateToOrigin))))
}

// MakeReverseTransform maps view space back to world space for the same
// rotation, pivot and view translation given to MakeTransform.
func MakeReverseTransform(rotate Vector3, pivot Point3d, viewTranslation Vector3) Transform {
	translateToOrigin := NewTranslation(VectorFromPoint(pivot.Negate()))
	translateBack := NewTranslation(VectorFromPoint(pivot))

	unrotate := NewXRotation(-rotate.X).Compose(
		NewYRotation(-rotate.Y).Compose(
			NewZRotation(-rotate.Z)))
	unisometric := NewYRotation(-math.Pi / 4).Compose(NewXRotation(-math.Pi / 4))

	return translateBack.Compose(
		unrotate.Compose(
			translateToOrigin.Compose(
				unisometric.Compose(
					NewTranslation(viewTranslation.Negate())))))
}
