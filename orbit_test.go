package liquidglass

import (
	"math"
	"testing"
)

func TestNewSpringOrbitClampsCount(t *testing.T) {
	if got := len(NewSpringOrbit(0, 0, 0, 100, 60).Step()); got != 1 {
		t.Errorf("n=0 gives %d shapes, want 1", got)
	}
	if got := len(NewSpringOrbit(MaxShapes+5, 0, 0, 100, 60).Step()); got != MaxShapes {
		t.Errorf("n=%d gives %d shapes, want %d", MaxShapes+5, got, MaxShapes)
	}
}

func TestOrbitShapesStayNearOrbitRadius(t *testing.T) {
	const radius = 150.0
	o := NewSpringOrbit(4, 480, 300, radius, 60)

	var shapes []Shape
	for i := 0; i < 600; i++ {
		shapes = o.Step()
	}
	for i, s := range shapes {
		d := math.Hypot(s.X-480, s.Y-300)
		// Anchors move slowly, so settled springs trail the orbit closely.
		if math.Abs(d-radius) > radius*0.15 {
			t.Errorf("shape %d at distance %.1f from center, want near %.0f", i, d, radius)
		}
	}
}

func TestOrbitDragPullsShapeToPointer(t *testing.T) {
	o := NewSpringOrbit(3, 480, 300, 150, 60)
	for i := 0; i < 120; i++ {
		o.Step()
	}

	o.Drag(1, 100, 100)
	var s Shape
	for i := 0; i < 300; i++ {
		s = o.Step()[1]
	}
	if math.Hypot(s.X-100, s.Y-100) > 10 {
		t.Fatalf("dragged shape at (%.1f, %.1f), want near (100, 100)", s.X, s.Y)
	}

	o.EndDrag()
	for i := 0; i < 600; i++ {
		s = o.Step()[1]
	}
	if d := math.Hypot(s.X-480, s.Y-300); math.Abs(d-150) > 30 {
		t.Errorf("released shape at distance %.1f from center, want back near orbit radius 150", d)
	}
}

func TestOrbitDragIgnoresBadIndex(t *testing.T) {
	o := NewSpringOrbit(2, 0, 0, 100, 60)
	o.Drag(-1, 5, 5)
	o.Drag(2, 5, 5)
	if o.dragIndex != -1 {
		t.Errorf("dragIndex = %d after out-of-range drags, want -1", o.dragIndex)
	}
}

func TestOrbitHitTest(t *testing.T) {
	o := NewSpringOrbit(2, 480, 300, 150, 60)
	shapes := o.Step()

	for i, s := range shapes {
		if got := o.HitTest(s.X, s.Y); got != i {
			t.Errorf("HitTest at shape %d center = %d", i, got)
		}
	}
	if got := o.HitTest(-1000, -1000); got != -1 {
		t.Errorf("HitTest far away = %d, want -1", got)
	}
}

func TestOrbitSetCenterMovesAnchors(t *testing.T) {
	o := NewSpringOrbit(1, 0, 0, 50, 60)
	for i := 0; i < 120; i++ {
		o.Step()
	}
	o.SetCenter(400, 400)
	var s Shape
	for i := 0; i < 600; i++ {
		s = o.Step()[0]
	}
	if d := math.Hypot(s.X-400, s.Y-400); math.Abs(d-50) > 15 {
		t.Errorf("shape at distance %.1f from new center, want near 50", d)
	}
}
