package core

// Point is a position in world space. It shares Vec3's layout but only
// supports translation by a Vec3 and subtraction from another Point.
type Point struct {
	X, Y, Z float64
}

// NewPoint creates a new Point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Origin returns the world origin
func Origin() Point {
	return Point{}
}

// PointFromVec3 converts a displacement from the origin into a Point
func PointFromVec3(v Vec3) Point {
	return Point{X: v.X, Y: v.Y, Z: v.Z}
}

// Vec3 returns the displacement of p from the origin
func (p Point) Vec3() Vec3 {
	return Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// Translate moves the point by v
func (p Point) Translate(v Vec3) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Subtract returns the vector from other to p
func (p Point) Subtract(other Point) Vec3 {
	return Vec3{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// DistanceTo returns the Euclidean distance between two points
func (p Point) DistanceTo(other Point) float64 {
	return p.Subtract(other).Length()
}

// IsFinite reports whether every coordinate is neither NaN nor infinite
func (p Point) IsFinite() bool {
	return p.Vec3().IsFinite()
}
