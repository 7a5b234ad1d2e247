package timeline

import (
	"math"
	"testing"
)

func exampleDoc() *Document {
	return &Document{
		Version: 1, FPS: 60, DurationFrames: 360,
		Events: []Event{
			{ID: "e1", Frame: 60, ComponentID: "panel", Action: "Expand", Spring: springPtr(snappy)},
			{ID: "e2", Frame: 240, ComponentID: "panel", Action: "Collapse", Spring: springPtr(snappy)},
		},
	}
}

func TestResolveExpandCollapseExample(t *testing.T) {
	doc := exampleDoc()
	cl := DefaultClassifier()

	t.Run("before anything fires", func(t *testing.T) {
		st := Resolve(doc, "panel", 0, cl, ResolveOptions{})
		if st.Progress != 0 {
			t.Errorf("progress = %v, want 0", st.Progress)
		}
		if st.IsExpanded {
			t.Error("isExpanded = true before any event")
		}
		if st.SizeMultiplier != 1 {
			t.Errorf("sizeMultiplier = %v, want 1", st.SizeMultiplier)
		}
	})

	t.Run("mid expand", func(t *testing.T) {
		// 90 frames after Expand, Collapse not yet fired.
		st := Resolve(doc, "panel", 150, cl, ResolveOptions{})
		if st.Progress < 0.95 {
			t.Errorf("progress = %v, want near 1", st.Progress)
		}
		if !st.IsExpanded {
			t.Error("isExpanded = false while expanded")
		}
	})

	t.Run("after collapse", func(t *testing.T) {
		// 60 frames after Collapse.
		st := Resolve(doc, "panel", 300, cl, ResolveOptions{})
		if st.Progress > 0.05 {
			t.Errorf("progress = %v, want near 0", st.Progress)
		}
		if st.IsExpanded {
			t.Error("isExpanded = true after collapse")
		}
	})
}

func TestResolveIdempotent(t *testing.T) {
	doc := exampleDoc()
	doc.Events = append(doc.Events, Event{
		ID: "p1", Frame: 30, ComponentID: "panel", Action: "MoveTo",
		Params: map[string]any{"x": 120.0, "y": 40.0}, Spring: springPtr(snappy),
	})
	cl := DefaultClassifier()
	for _, q := range []float64{0, 29, 30.5, 61, 150, 240, 300, 1e6} {
		a := Resolve(doc, "panel", q, cl, ResolveOptions{OriginX: 5, OriginY: 7})
		b := Resolve(doc, "panel", q, cl, ResolveOptions{OriginX: 5, OriginY: 7})
		if a != b {
			t.Fatalf("frame %v: repeated resolve differs: %+v vs %+v", q, a, b)
		}
	}
}

func TestResolveChainedPosition(t *testing.T) {
	doc := &Document{
		Version: 1, FPS: 60, DurationFrames: 300,
		Events: []Event{
			{ID: "p1", Frame: 10, ComponentID: "panel", Action: "MoveTo",
				Params: map[string]any{"x": 0.0, "y": 0.0}, Spring: springPtr(snappy)},
			{ID: "p2", Frame: 50, ComponentID: "panel", Action: "MoveTo",
				Params: map[string]any{"x": 100.0, "y": 0.0}, Spring: springPtr(snappy)},
			{ID: "p3", Frame: 90, ComponentID: "panel", Action: "MoveTo",
				Params: map[string]any{"x": 100.0, "y": 200.0}, Spring: springPtr(snappy)},
		},
	}
	cl := DefaultClassifier()
	opts := ResolveOptions{OriginX: 400, OriginY: 300}

	t.Run("before first event", func(t *testing.T) {
		st := Resolve(doc, "panel", 9, cl, opts)
		if st.HasPosition {
			t.Error("HasPosition = true before any position event")
		}
	})

	t.Run("single event animates from origin", func(t *testing.T) {
		st := Resolve(doc, "panel", 11, cl, opts)
		if !st.HasPosition {
			t.Fatal("HasPosition = false after first position event")
		}
		// One frame in: still close to the supplied origin, moving toward (0,0).
		if st.X <= 0 || st.X >= 400 || st.Y <= 0 || st.Y >= 300 {
			t.Errorf("position (%v, %v) not between origin and target", st.X, st.Y)
		}
	})

	t.Run("chain segment starts at previous target", func(t *testing.T) {
		// Just after p3 fires, position must be near p2's target (100, 0),
		// not near the origin.
		st := Resolve(doc, "panel", 91, cl, opts)
		if math.Abs(st.X-100) > 5 {
			t.Errorf("x = %v, want near previous target 100", st.X)
		}
		if st.Y > 100 {
			t.Errorf("y = %v, should still be near previous target 0", st.Y)
		}
	})

	t.Run("converges to final target", func(t *testing.T) {
		st := Resolve(doc, "panel", 200, cl, opts)
		if math.Abs(st.X-100) > 1e-3 || math.Abs(st.Y-200) > 1e-3 {
			t.Errorf("position (%v, %v), want (100, 200)", st.X, st.Y)
		}
	})
}

func TestResolveSameFrameExpandCollapseIsCollapsed(t *testing.T) {
	doc := &Document{
		Version: 1, FPS: 60, DurationFrames: 100,
		Events: []Event{
			{ID: "a", Frame: 10, ComponentID: "panel", Action: "Expand", Spring: springPtr(snappy)},
			{ID: "b", Frame: 10, ComponentID: "panel", Action: "Collapse", Spring: springPtr(snappy)},
		},
	}
	st := Resolve(doc, "panel", 50, DefaultClassifier(), ResolveOptions{})
	if st.IsExpanded {
		t.Error("expand must be strictly later than collapse to win the tie")
	}
}

func TestResolveUnknownComponentInert(t *testing.T) {
	st := Resolve(exampleDoc(), "ghost", 150, DefaultClassifier(), ResolveOptions{})
	if st.Progress != 0 || st.IsExpanded || st.HasPosition {
		t.Errorf("unknown component resolved non-zero state: %+v", st)
	}
	if st.SizeMultiplier != 1 {
		t.Errorf("sizeMultiplier = %v, want 1", st.SizeMultiplier)
	}
}

func TestResolveSizeRange(t *testing.T) {
	doc := exampleDoc()
	cl := DefaultClassifier()
	st := Resolve(doc, "panel", 150, cl, ResolveOptions{SizeRange: 0.5})
	want := 1 + st.Progress*0.5
	if math.Abs(st.SizeMultiplier-want) > 1e-12 {
		t.Errorf("sizeMultiplier = %v, want %v", st.SizeMultiplier, want)
	}
	// Zero SizeRange falls back to the default 0.8 mapping.
	st = Resolve(doc, "panel", 150, cl, ResolveOptions{})
	want = 1 + st.Progress*0.8
	if math.Abs(st.SizeMultiplier-want) > 1e-12 {
		t.Errorf("default sizeMultiplier = %v, want %v", st.SizeMultiplier, want)
	}
}
