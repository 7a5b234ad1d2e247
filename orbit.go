package liquidglass

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// OrbitLayout produces the shape array for the multi-shape live mode. The
// pass graph only consumes the returned positions and sizes; how they move
// is the layout's business, and simulation fidelity is explicitly not a
// goal here.
type OrbitLayout interface {
	// Step advances the layout by one frame and returns the current shapes.
	// The returned slice is reused between calls.
	Step() []Shape
}

type orbitShape struct {
	springX, springY harmonica.Spring
	x, y, vx, vy     float64
	angle            float64
	halfW, halfH     float64
}

// SpringOrbit is the default OrbitLayout: each shape's position is a spring
// chasing an anchor that slowly circles the center. Dragging a shape moves
// its anchor to the pointer, so releasing it snaps back onto the orbit.
type SpringOrbit struct {
	shapes       []orbitShape
	centerX      float64
	centerY      float64
	radius       float64
	angularSpeed float64
	dragIndex    int
	dragX, dragY float64
	out          []Shape
}

// NewSpringOrbit creates an orbit of n shapes (clamped to [1, MaxShapes])
// around the given center, stepped at the given frame rate. Springs are
// slightly detuned per shape so the motion never locks into unison.
func NewSpringOrbit(n int, centerX, centerY, radius float64, fps int) *SpringOrbit {
	if n < 1 {
		n = 1
	}
	if n > MaxShapes {
		n = MaxShapes
	}
	o := &SpringOrbit{
		centerX:      centerX,
		centerY:      centerY,
		radius:       radius,
		angularSpeed: 0.25 / float64(fps),
		dragIndex:    -1,
		out:          make([]Shape, n),
	}
	for i := 0; i < n; i++ {
		freq := 4.5 + 0.6*float64(i)
		sp := harmonica.NewSpring(harmonica.FPS(fps), freq, 0.55)
		angle := 2 * math.Pi * float64(i) / float64(n)
		o.shapes = append(o.shapes, orbitShape{
			springX: sp,
			springY: sp,
			x:       centerX + radius*math.Cos(angle),
			y:       centerY + radius*math.Sin(angle),
			angle:   angle,
			halfW:   70 - 4*float64(i%3),
			halfH:   52 - 4*float64((i+1)%3),
		})
	}
	return o
}

// SetCenter moves the orbit center (e.g. after a resize).
func (o *SpringOrbit) SetCenter(x, y float64) {
	o.centerX, o.centerY = x, y
}

// Drag pins shape i's anchor to the pointer. Out-of-range indices are
// ignored.
func (o *SpringOrbit) Drag(i int, x, y float64) {
	if i < 0 || i >= len(o.shapes) {
		return
	}
	o.dragIndex = i
	o.dragX, o.dragY = x, y
}

// EndDrag releases the dragged shape back onto its orbit anchor.
func (o *SpringOrbit) EndDrag() {
	o.dragIndex = -1
}

// HitTest returns the index of the topmost shape containing the point, or
// -1.
func (o *SpringOrbit) HitTest(x, y float64) int {
	for i := len(o.out) - 1; i >= 0; i-- {
		if o.out[i].Bounds().Contains(x, y) {
			return i
		}
	}
	return -1
}

// Step advances every anchor along its orbit and every spring toward its
// anchor, then returns the shape array.
func (o *SpringOrbit) Step() []Shape {
	for i := range o.shapes {
		s := &o.shapes[i]
		s.angle += o.angularSpeed

		ax := o.centerX + o.radius*math.Cos(s.angle)
		ay := o.centerY + o.radius*math.Sin(s.angle)
		if i == o.dragIndex {
			ax, ay = o.dragX, o.dragY
		}

		s.x, s.vx = s.springX.Update(s.x, s.vx, ax)
		s.y, s.vy = s.springY.Update(s.y, s.vy, ay)

		o.out[i] = Shape{X: s.x, Y: s.y, HalfW: s.halfW, HalfH: s.halfH}
	}
	return o.out
}
