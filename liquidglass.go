package liquidglass

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Vec2 is a 2D vector used for positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// MaxShapes is the largest number of glass shapes one frame can composite.
// The shape uniform array in the composite shader is fixed at this size and
// a shape-count uniform switches the accumulation loop bound.
const MaxShapes = 8

// Shape is one glass panel instance fed to the pass graph: a center point
// and half extents, in pixels.
type Shape struct {
	X, Y         float64
	HalfW, HalfH float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Bounds returns the shape's bounding rectangle.
func (s Shape) Bounds() Rect {
	return Rect{X: s.X - s.HalfW, Y: s.Y - s.HalfH, Width: 2 * s.HalfW, Height: 2 * s.HalfH}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
