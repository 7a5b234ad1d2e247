package liquidglass

import "testing"

func TestSetShapesPacksAndZeroes(t *testing.T) {
	u := newUniformSource()
	u.SetShapes([]Shape{
		{X: 10, Y: 20, HalfW: 30, HalfH: 40},
		{X: 50, Y: 60, HalfW: 70, HalfH: 80},
	})

	want := []float32{10, 20, 30, 40, 50, 60, 70, 80}
	for i, v := range want {
		if u.shapeBuf[i] != v {
			t.Errorf("shapeBuf[%d] = %v, want %v", i, u.shapeBuf[i], v)
		}
	}
	for i := len(want); i < len(u.shapeBuf); i++ {
		if u.shapeBuf[i] != 0 {
			t.Errorf("shapeBuf[%d] = %v, want 0 (unused slots zeroed)", i, u.shapeBuf[i])
		}
	}
	if got := u.background["ShapeCount"]; got != float32(2) {
		t.Errorf("background ShapeCount = %v, want 2", got)
	}
	if got := u.glass["ShapeCount"]; got != float32(2) {
		t.Errorf("glass ShapeCount = %v, want 2", got)
	}
}

func TestSetShapesClampsToMax(t *testing.T) {
	u := newUniformSource()
	shapes := make([]Shape, MaxShapes+3)
	for i := range shapes {
		shapes[i] = Shape{X: float64(i + 1), HalfW: 1, HalfH: 1}
	}
	u.SetShapes(shapes)

	if got := u.glass["ShapeCount"]; got != float32(MaxShapes) {
		t.Fatalf("ShapeCount = %v, want %v", got, MaxShapes)
	}
	if u.shapeBuf[(MaxShapes-1)*4] != float32(MaxShapes) {
		t.Errorf("last used slot X = %v, want %v", u.shapeBuf[(MaxShapes-1)*4], MaxShapes)
	}
}

func TestSetShapesShrinkClearsStale(t *testing.T) {
	u := newUniformSource()
	u.SetShapes([]Shape{
		{X: 1, Y: 1, HalfW: 1, HalfH: 1},
		{X: 2, Y: 2, HalfW: 2, HalfH: 2},
	})
	u.SetShapes([]Shape{{X: 3, Y: 3, HalfW: 3, HalfH: 3}})

	if got := u.glass["ShapeCount"]; got != float32(1) {
		t.Fatalf("ShapeCount = %v, want 1", got)
	}
	for i := 4; i < 8; i++ {
		if u.shapeBuf[i] != 0 {
			t.Errorf("shapeBuf[%d] = %v, stale shape data left behind", i, u.shapeBuf[i])
		}
	}
}

func TestSetParamsRoutesUniforms(t *testing.T) {
	u := newUniformSource()
	p := DefaultGlassParams()
	p.BlurStep = 3.5
	p.RefractionStrength = 9
	p.ShadowStrength = 2 // clamped
	p.TintStrength = -1  // clamped
	u.SetParams(p)

	if got := u.blurV["Step"]; got != float32(3.5) {
		t.Errorf("blurV Step = %v, want 3.5", got)
	}
	if got := u.blurH["Step"]; got != float32(3.5) {
		t.Errorf("blurH Step = %v, want 3.5", got)
	}
	if got := u.glass["RefractionStrength"]; got != float32(9) {
		t.Errorf("RefractionStrength = %v, want 9", got)
	}
	if got := u.background["ShadowStrength"]; got != float32(1) {
		t.Errorf("ShadowStrength = %v, want clamped 1", got)
	}
	if got := u.glass["TintStrength"]; got != float32(0) {
		t.Errorf("TintStrength = %v, want clamped 0", got)
	}
}

func TestSetParamsFloorsEdgeWidth(t *testing.T) {
	u := newUniformSource()
	p := DefaultGlassParams()
	p.EdgeWidth = 0
	u.SetParams(p)
	if got := u.glass["EdgeWidth"]; got != float32(1) {
		t.Errorf("EdgeWidth = %v, want floor of 1", got)
	}
}

func TestUniformsPerPass(t *testing.T) {
	u := newUniformSource()
	tests := []struct {
		pass string
		keys []string
	}{
		{PassBackground, []string{"Shapes", "ShapeCount", "CornerRadius", "ShadowOffset", "ShadowSoftness", "ShadowStrength"}},
		{PassBlurV, []string{"Direction", "Step"}},
		{PassBlurH, []string{"Direction", "Step"}},
		{PassGlass, []string{"Shapes", "ShapeCount", "CornerRadius", "EdgeWidth", "RefractionStrength", "FresnelIntensity", "GlareIntensity", "LightDir", "Aberration", "Tint", "TintStrength"}},
	}
	u.SetShapes([]Shape{{X: 1, Y: 1, HalfW: 1, HalfH: 1}})
	for _, tt := range tests {
		m := u.Uniforms(tt.pass)
		if m == nil {
			t.Fatalf("Uniforms(%q) = nil", tt.pass)
		}
		for _, k := range tt.keys {
			if _, ok := m[k]; !ok {
				t.Errorf("Uniforms(%q) missing %q", tt.pass, k)
			}
		}
	}
	if u.Uniforms("ghost") != nil {
		t.Error("unknown pass should have no uniforms")
	}

	// Blur directions are fixed per pass.
	dv := u.Uniforms(PassBlurV)["Direction"].([]float32)
	dh := u.Uniforms(PassBlurH)["Direction"].([]float32)
	if dv[0] != 0 || dv[1] != 1 {
		t.Errorf("vertical blur direction = %v, want (0,1)", dv)
	}
	if dh[0] != 1 || dh[1] != 0 {
		t.Errorf("horizontal blur direction = %v, want (1,0)", dh)
	}
}

func TestShapeUniformBufferIsShared(t *testing.T) {
	u := newUniformSource()
	u.SetShapes([]Shape{{X: 42, Y: 7, HalfW: 5, HalfH: 5}})

	// Both consuming passes must observe the write without a new allocation.
	bg := u.Uniforms(PassBackground)["Shapes"].([]float32)
	gl := u.Uniforms(PassGlass)["Shapes"].([]float32)
	if bg[0] != 42 || gl[0] != 42 {
		t.Fatalf("Shapes buffers = %v / %v, want shared view of the same write", bg[0], gl[0])
	}
	if &bg[0] != &gl[0] {
		t.Error("passes hold distinct buffers; uniform updates would desync")
	}
}
