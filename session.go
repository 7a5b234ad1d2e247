package liquidglass

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/liquidglass/timeline"
)

// SessionConfig configures a live interactive session.
type SessionConfig struct {
	// Width, Height is the initial canvas size. Defaults to 960x600.
	Width, Height int
	// BackgroundPath is the backdrop image file; empty keeps the
	// checkerboard placeholder.
	BackgroundPath string
	// Glass is the visual parameter set. Zero value means defaults.
	Glass *GlassParams
	// Spring shapes the hover expand/collapse animation.
	// Zero value means the document default spring.
	Spring timeline.SpringConfig
	// ShapeCount above 1 enables the orbital multi-shape mode (capped at
	// MaxShapes).
	ShapeCount int
	// BaseW, BaseH is the resting panel size in pixels. Defaults to 360x220.
	BaseW, BaseH float64
	// TPS is the simulation tick rate. Defaults to 60.
	TPS int
}

func (cfg SessionConfig) withDefaults() SessionConfig {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Glass == nil {
		p := DefaultGlassParams()
		cfg.Glass = &p
	}
	if cfg.Spring == (timeline.SpringConfig{}) {
		cfg.Spring = timeline.SpringConfig{Stiffness: 280, Damping: 24, Mass: 1}
	}
	if cfg.ShapeCount < 1 {
		cfg.ShapeCount = 1
	}
	if cfg.ShapeCount > MaxShapes {
		cfg.ShapeCount = MaxShapes
	}
	if cfg.BaseW <= 0 {
		cfg.BaseW = 360
	}
	if cfg.BaseH <= 0 {
		cfg.BaseH = 220
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	return cfg
}

// Session is the live interactive mode: a continuous redraw loop where the
// glass panel follows the pointer, clicking toggles expansion through a
// spring, and the panel drifts gently while idle.
//
// Ordering contract: Update fully applies all pointer-driven state mutations
// before returning; Draw only reads. Both run on ebiten's single-threaded
// scheduler, so no locking is needed and no tick can observe a torn write.
// Live mode does not gate frames — it renders whatever texture state
// currently exists, placeholder included.
type Session struct {
	cfg      SessionConfig
	graph    *PassGraph
	bg       *Background
	uniforms *uniformSource

	expand       *timeline.Integrator
	expandTarget float64
	drift        *gween.Tween
	driftUp      bool
	driftY       float64

	orbit       *SpringOrbit
	pointer     Vec2
	prevPressed bool

	shapes   []Shape
	degraded bool
	w, h     int
}

// NewSession builds a live session. A shader compilation or context failure
// is returned here, once; the caller proceeds without a session rather than
// hanging.
func NewSession(cfg SessionConfig) (*Session, error) {
	cfg = cfg.withDefaults()

	graph, err := NewGlassGraph(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("live session: %w", err)
	}

	expand, err := timeline.NewIntegrator(cfg.Spring, cfg.TPS)
	if err != nil {
		graph.Dispose()
		return nil, fmt.Errorf("live session: %w", err)
	}

	s := &Session{
		cfg:      cfg,
		graph:    graph,
		bg:       NewBackground(cfg.Width, cfg.Height),
		uniforms: newUniformSource(),
		expand:   expand,
		drift:    gween.New(-1, 1, 4, ease.InOutSine),
		pointer:  Vec2{X: float64(cfg.Width) / 2, Y: float64(cfg.Height) / 2},
		shapes:   make([]Shape, 0, MaxShapes),
		w:        cfg.Width,
		h:        cfg.Height,
	}
	s.uniforms.SetParams(*cfg.Glass)
	s.bg.LoadFile(cfg.BackgroundPath)

	if cfg.ShapeCount > 1 {
		cx, cy := float64(cfg.Width)/2, float64(cfg.Height)/2
		radius := float64(cfg.Height) * 0.3
		s.orbit = NewSpringOrbit(cfg.ShapeCount, cx, cy, radius, cfg.TPS)
	}
	return s, nil
}

// SetParams replaces the visual parameter set. Called from input/settings
// handlers; the next Draw picks it up whole.
func (s *Session) SetParams(p GlassParams) {
	s.uniforms.SetParams(p)
}

// Update applies pointer input, steps the springs and the idle drift, and
// polls the backdrop loader. Runs before Draw every tick.
func (s *Session) Update() error {
	mx, my := ebiten.CursorPosition()
	s.pointer = Vec2{X: float64(mx), Y: float64(my)}

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if s.orbit != nil {
		switch {
		case pressed && !s.prevPressed:
			if i := s.orbit.HitTest(s.pointer.X, s.pointer.Y); i >= 0 {
				s.orbit.Drag(i, s.pointer.X, s.pointer.Y)
			}
		case pressed:
			s.orbit.Drag(s.orbit.dragIndex, s.pointer.X, s.pointer.Y)
		default:
			s.orbit.EndDrag()
		}
	} else if pressed && !s.prevPressed {
		// Click toggles the expand spring target; repeated clicks mid-flight
		// just retarget the running spring instead of restarting it.
		s.expandTarget = 1 - s.expandTarget
	}
	s.prevPressed = pressed

	s.expand.Step(s.expandTarget)

	dt := float32(1.0 / float64(s.cfg.TPS))
	v, finished := s.drift.Update(dt)
	s.driftY = float64(v) * 9
	if finished {
		if s.driftUp {
			s.drift = gween.New(-1, 1, 4, ease.InOutSine)
		} else {
			s.drift = gween.New(1, -1, 4, ease.InOutSine)
		}
		s.driftUp = !s.driftUp
	}

	s.bg.Poll()
	return nil
}

// Draw executes the pass graph into the screen. On a shader execution
// failure the session degrades to a flat fill instead of crashing the host.
func (s *Session) Draw(screen *ebiten.Image) {
	if s.degraded {
		screen.Fill(color.RGBA{R: 0x18, G: 0x1a, B: 0x20, A: 0xff})
		return
	}

	s.shapes = s.shapes[:0]
	if s.orbit != nil {
		s.shapes = append(s.shapes, s.orbit.Step()...)
	} else {
		mul := 1 + 0.8*clamp01(s.expand.Pos)
		half := Vec2{X: s.cfg.BaseW / 2 * mul, Y: s.cfg.BaseH / 2 * mul}
		s.shapes = append(s.shapes, Shape{
			X:     clamp(s.pointer.X, half.X, float64(s.w)-half.X),
			Y:     clamp(s.pointer.Y+s.driftY, half.Y, float64(s.h)-half.Y),
			HalfW: half.X,
			HalfH: half.Y,
		})
	}
	s.uniforms.SetShapes(s.shapes)

	if err := s.graph.SetExternal(ExternalScene, s.bg.Image()); err != nil {
		s.fail(err)
		return
	}
	if err := s.graph.Execute(screen, s.uniforms.Uniforms); err != nil {
		s.fail(err)
	}
}

func (s *Session) fail(err error) {
	fmt.Fprintf(os.Stderr, "[liquidglass] live render degraded: %v\n", err)
	s.degraded = true
}

// Layout reports the logical canvas size and reallocates every GPU resource
// when the window size changes. The reallocation happens here, before the
// next Draw, so no pass ever executes against a stale framebuffer.
func (s *Session) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != s.w || outsideHeight != s.h) {
		s.w, s.h = outsideWidth, outsideHeight
		s.graph.Resize(s.w, s.h)
		s.bg.Resize(s.w, s.h)
		if s.orbit != nil {
			s.orbit.SetCenter(float64(s.w)/2, float64(s.h)/2)
		}
	}
	return s.w, s.h
}

// Run opens the window and drives the session until it is closed.
func (s *Session) Run(title string) error {
	ebiten.SetWindowSize(s.w, s.h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(s.cfg.TPS)
	defer s.Dispose()
	return ebiten.RunGame(s)
}

// Dispose releases the session's GPU resources. The session must not be
// used afterwards.
func (s *Session) Dispose() {
	s.graph.Dispose()
	s.bg.Dispose()
}
