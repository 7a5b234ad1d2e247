package liquidglass

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/liquidglass/timeline"
)

// RenderConfig describes one offline render job: a timeline document walked
// frame by frame into a PNG sequence.
type RenderConfig struct {
	// Doc is the timeline document to render. Required.
	Doc *timeline.Document
	// Classes maps actions to signed classes. Nil means the default
	// Expand/Collapse/MoveTo classification.
	Classes *timeline.Classifier
	// OutDir receives frame_00000.png .. frame_NNNNN.png.
	OutDir string
	// ComponentID is the animated panel component. Defaults to "panel".
	ComponentID string
	// BackgroundPath is the backdrop image; empty keeps the placeholder.
	BackgroundPath string
	// Glass is the visual parameter set. Nil means defaults.
	Glass *GlassParams
	// BaseW, BaseH is the resting panel size. Defaults to 360x220.
	BaseW, BaseH float64
	// Width, Height is the fallback resolution when the document declares
	// no canvas. Defaults to 1280x720.
	Width, Height int
}

// Renderer is the render mode: strictly one queried frame at a time, fully
// deterministic, with no wall-clock dependency. The state resolver is pure,
// so an uncaptured frame is simply recomputed from scratch on the next tick
// until its gate token reports the visual dependencies ready; only then is
// it captured and the walk advances. Nothing is retried after a terminal
// failure.
type Renderer struct {
	cfg      RenderConfig
	classes  *timeline.Classifier
	graph    *PassGraph
	bg       *Background
	gate     *Gate
	uniforms *uniformSource
	target   *ebiten.Image

	frame  int
	pixels []byte
	img    *image.NRGBA
	w, h   int
	err    error
	done   bool
}

// NewRenderer validates the job and allocates the pipeline. A shader or
// context failure surfaces here, once; the caller proceeds without a
// renderer instead of waiting on a gate that will never open.
func NewRenderer(cfg RenderConfig) (*Renderer, error) {
	if cfg.Doc == nil {
		return nil, fmt.Errorf("render: no timeline document")
	}
	if cfg.OutDir == "" {
		return nil, fmt.Errorf("render: no output directory")
	}
	if cfg.ComponentID == "" {
		cfg.ComponentID = "panel"
	}
	if cfg.BaseW <= 0 {
		cfg.BaseW = 360
	}
	if cfg.BaseH <= 0 {
		cfg.BaseH = 220
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	w, h := cfg.Doc.Size(cfg.Width, cfg.Height)
	graph, err := NewGlassGraph(w, h)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	r := &Renderer{
		cfg:      cfg,
		classes:  cfg.Classes,
		graph:    graph,
		bg:       NewBackground(w, h),
		gate:     NewGate(),
		uniforms: newUniformSource(),
		target:   ebiten.NewImage(w, h),
		w:        w,
		h:        h,
	}
	if r.classes == nil {
		r.classes = timeline.DefaultClassifier()
	}
	if cfg.Glass != nil {
		r.uniforms.SetParams(*cfg.Glass)
	}
	r.bg.OnReady(r.gate.MarkTextureReady)
	r.bg.LoadFile(cfg.BackgroundPath)
	return r, nil
}

// Update polls the backdrop loader and terminates the game loop once the
// walk has finished.
func (r *Renderer) Update() error {
	if r.done {
		return ebiten.Termination
	}
	r.bg.Poll()
	return nil
}

// Draw renders the current logical frame and captures it once its gate
// token unblocks.
func (r *Renderer) Draw(screen *ebiten.Image) {
	if r.done {
		return
	}

	token := r.gate.Acquire()

	st := timeline.Resolve(r.cfg.Doc, r.cfg.ComponentID, float64(r.frame), r.classes, timeline.ResolveOptions{
		OriginX: float64(r.w) / 2,
		OriginY: float64(r.h) / 2,
	})
	x, y := float64(r.w)/2, float64(r.h)/2
	if st.HasPosition {
		x, y = st.X, st.Y
	}
	r.uniforms.SetShapes([]Shape{{
		X: x, Y: y,
		HalfW: r.cfg.BaseW / 2 * st.SizeMultiplier,
		HalfH: r.cfg.BaseH / 2 * st.SizeMultiplier,
	}})

	if err := r.graph.SetExternal(ExternalScene, r.bg.Image()); err != nil {
		r.fail(err)
		return
	}
	if err := r.graph.Execute(r.target, r.uniforms.Uniforms); err != nil {
		r.fail(err)
		return
	}
	r.gate.MarkDrawn()
	token.Release()

	// Window preview of the frame being rendered.
	screen.DrawImage(r.target, nil)

	select {
	case <-token.Done():
		if err := token.Err(); err != nil {
			r.fail(err)
			return
		}
	default:
		// Backdrop still decoding: no frame is captured before its visual
		// dependencies exist. The same frame re-renders next tick.
		return
	}

	if err := r.writeFrame(); err != nil {
		r.fail(err)
		return
	}
	r.frame++
	if r.frame > r.cfg.Doc.DurationFrames {
		r.done = true
	}
}

func (r *Renderer) fail(err error) {
	r.gate.Fail(err)
	r.err = err
	r.done = true
}

// writeFrame captures the offscreen target as a straight-alpha PNG.
func (r *Renderer) writeFrame() error {
	n := 4 * r.w * r.h
	if cap(r.pixels) < n {
		r.pixels = make([]byte, n)
		r.img = image.NewNRGBA(image.Rect(0, 0, r.w, r.h))
	}
	r.pixels = r.pixels[:n]
	r.target.ReadPixels(r.pixels)
	unpremultiply(r.img.Pix, r.pixels)

	path := filepath.Join(r.cfg.OutDir, framePath(r.frame))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, r.img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// framePath formats the capture filename for a frame index.
func framePath(frame int) string {
	return fmt.Sprintf("frame_%05d.png", frame)
}

// unpremultiply converts premultiplied RGBA pixels (as read from the GPU)
// into straight-alpha NRGBA bytes. Both slices hold 4 bytes per pixel and
// must have equal length.
func unpremultiply(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		r, g, b, a := src[i], src[i+1], src[i+2], src[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		dst[i] = r
		dst[i+1] = g
		dst[i+2] = b
		dst[i+3] = a
	}
}

// Layout reports the fixed document resolution; render mode never resizes
// mid-walk.
func (r *Renderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.w, r.h
}

// Run drives the render to completion and returns the first terminal error,
// if any.
func (r *Renderer) Run() error {
	ebiten.SetWindowSize(r.w, r.h)
	ebiten.SetWindowTitle("liquidglass render")
	defer r.Dispose()
	if err := ebiten.RunGame(r); err != nil {
		return err
	}
	return r.err
}

// Frames reports how many frames have been captured so far.
func (r *Renderer) Frames() int { return r.frame }

// Dispose releases the renderer's GPU resources.
func (r *Renderer) Dispose() {
	r.graph.Dispose()
	r.bg.Dispose()
	if r.target != nil {
		r.target.Deallocate()
		r.target = nil
	}
}
