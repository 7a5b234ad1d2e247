package liquidglass

// GlassParams is the full visual parameter set of the glass composite.
// In live mode input handlers write it and the redraw tick reads it; both
// run on ebiten's single-threaded scheduler, so a handler's mutation is
// always fully applied before the next Draw reads a snapshot.
type GlassParams struct {
	// CornerRadius rounds the glass shape corners, in pixels.
	CornerRadius float64
	// EdgeWidth is the rim band, in pixels, over which refraction, Fresnel,
	// and glare fade out toward the shape interior.
	EdgeWidth float64
	// RefractionStrength is the maximum backdrop displacement in pixels.
	RefractionStrength float64
	// FresnelIntensity brightens the rim.
	FresnelIntensity float64
	// GlareIntensity adds a specular highlight on the rim facing the light.
	GlareIntensity float64
	// LightDir is the incoming light direction; glare appears on the rim
	// facing against it.
	LightDir Vec2
	// Aberration offsets the red and blue refraction samples, in pixels.
	Aberration float64
	// Tint and TintStrength blend a color into the glass interior.
	Tint         Color
	TintStrength float64
	// BlurStep is the Gaussian sample spacing in pixels for both blur passes.
	BlurStep float64
	// Shadow of the glass shape on the backdrop.
	ShadowOffset   Vec2
	ShadowSoftness float64
	ShadowStrength float64
}

// DefaultGlassParams returns the stock liquid glass look.
func DefaultGlassParams() GlassParams {
	return GlassParams{
		CornerRadius:       28,
		EdgeWidth:          22,
		RefractionStrength: 14,
		FresnelIntensity:   0.22,
		GlareIntensity:     0.35,
		LightDir:           Vec2{X: 0.45, Y: 1},
		Aberration:         2.5,
		Tint:               Color{R: 0.85, G: 0.92, B: 1, A: 1},
		TintStrength:       0.08,
		BlurStep:           2.2,
		ShadowOffset:       Vec2{X: 0, Y: 10},
		ShadowSoftness:     24,
		ShadowStrength:     0.28,
	}
}

// uniformSource packs GlassParams and the shape array into the per-pass
// uniform sets. The maps and the shape float32 buffer are persistent so the
// per-frame work is writes into pre-stored slices; scalar float32 boxing is
// unavoidable with Ebitengine's uniform API.
type uniformSource struct {
	shapeBuf   [MaxShapes * 4]float32
	shapeSlice []float32
	count      int

	background map[string]any
	blurV      map[string]any
	blurH      map[string]any
	glass      map[string]any
}

func newUniformSource() *uniformSource {
	u := &uniformSource{}
	u.shapeSlice = u.shapeBuf[:]
	u.background = map[string]any{"Shapes": u.shapeSlice}
	u.blurV = map[string]any{"Direction": []float32{0, 1}}
	u.blurH = map[string]any{"Direction": []float32{1, 0}}
	u.glass = map[string]any{"Shapes": u.shapeSlice}
	u.SetParams(DefaultGlassParams())
	return u
}

// SetShapes writes the active shapes into the persistent uniform buffer.
// At most MaxShapes are used; extras are dropped.
func (u *uniformSource) SetShapes(shapes []Shape) {
	n := len(shapes)
	if n > MaxShapes {
		n = MaxShapes
	}
	u.count = n
	for i := 0; i < n; i++ {
		u.shapeBuf[i*4+0] = float32(shapes[i].X)
		u.shapeBuf[i*4+1] = float32(shapes[i].Y)
		u.shapeBuf[i*4+2] = float32(shapes[i].HalfW)
		u.shapeBuf[i*4+3] = float32(shapes[i].HalfH)
	}
	for i := n * 4; i < len(u.shapeBuf); i++ {
		u.shapeBuf[i] = 0
	}
	u.background["ShapeCount"] = float32(n)
	u.glass["ShapeCount"] = float32(n)
}

// SetParams refreshes every scalar uniform from the parameter set.
func (u *uniformSource) SetParams(p GlassParams) {
	u.background["CornerRadius"] = float32(p.CornerRadius)
	u.background["ShadowOffset"] = []float32{float32(p.ShadowOffset.X), float32(p.ShadowOffset.Y)}
	u.background["ShadowSoftness"] = float32(p.ShadowSoftness)
	u.background["ShadowStrength"] = float32(clamp01(p.ShadowStrength))

	u.blurV["Step"] = float32(p.BlurStep)
	u.blurH["Step"] = float32(p.BlurStep)

	// The glass shader divides the rim distance by EdgeWidth.
	edge := p.EdgeWidth
	if edge < 1 {
		edge = 1
	}

	u.glass["CornerRadius"] = float32(p.CornerRadius)
	u.glass["EdgeWidth"] = float32(edge)
	u.glass["RefractionStrength"] = float32(p.RefractionStrength)
	u.glass["FresnelIntensity"] = float32(p.FresnelIntensity)
	u.glass["GlareIntensity"] = float32(p.GlareIntensity)
	u.glass["LightDir"] = []float32{float32(p.LightDir.X), float32(p.LightDir.Y)}
	u.glass["Aberration"] = float32(p.Aberration)
	u.glass["Tint"] = []float32{
		float32(clamp01(p.Tint.R)), float32(clamp01(p.Tint.G)),
		float32(clamp01(p.Tint.B)), float32(clamp01(p.Tint.A)),
	}
	u.glass["TintStrength"] = float32(clamp01(p.TintStrength))
}

// Uniforms is the per-pass uniform callback handed to PassGraph.Execute.
func (u *uniformSource) Uniforms(pass string) map[string]any {
	switch pass {
	case PassBackground:
		return u.background
	case PassBlurV:
		return u.blurV
	case PassBlurH:
		return u.blurH
	case PassGlass:
		return u.glass
	}
	return nil
}
