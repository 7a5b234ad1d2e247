package liquidglass

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// PassInput binds one texture slot of a pass to the output of an earlier
// pass or to a registered external source.
type PassInput struct {
	// Slot is the shader image index (imageSrc0At .. imageSrc3At).
	Slot int
	// From names the producing pass or external source.
	From string
}

// PassDesc declares one rendering stage of the graph. Declaration order IS
// execution order: inputs may only reference passes declared earlier, which
// is validated once at construction instead of by name lookup every frame.
type PassDesc struct {
	Name     string
	Source   string
	Inputs   []PassInput
	ToScreen bool
}

// maxShaderImages mirrors ebiten.DrawRectShaderOptions.Images.
const maxShaderImages = 4

type boundInput struct {
	slot     int
	passIdx  int    // index into passes, -1 for external sources
	external string // set when passIdx == -1
}

type renderPass struct {
	name     string
	shader   *ebiten.Shader
	inputs   []boundInput
	target   *ebiten.Image // nil when toScreen
	toScreen bool
	opts     ebiten.DrawRectShaderOptions // persistent, avoids per-frame allocs
}

// PassGraph is a fixed sequence of GPU stages with declared texture
// hand-offs. Construction compiles every shader, resolves every input
// reference to an index, and allocates one framebuffer per offscreen pass.
// Each framebuffer is owned by the pass that produces it and borrowed by
// texture handle by any later pass listing it as an input; the screen sink
// is owned by the caller.
type PassGraph struct {
	passes    []renderPass
	byName    map[string]int
	externals map[string]*ebiten.Image
	w, h      int
	order     []string // pass names executed last frame, reused
}

// NewPassGraph validates the declared graph, compiles its shaders, and
// allocates framebuffers at the given resolution. The graph shape is
// validated before anything touches the GPU, so a malformed declaration
// fails without acquiring resources. A shader compilation failure is
// returned to the caller, which must degrade rather than hang.
func NewPassGraph(w, h int, externals []string, descs []PassDesc) (*PassGraph, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("pass graph: invalid resolution %dx%d", w, h)
	}
	if len(descs) == 0 {
		return nil, fmt.Errorf("pass graph: no passes declared")
	}

	extSet := make(map[string]struct{}, len(externals))
	for _, name := range externals {
		if name == "" {
			return nil, fmt.Errorf("pass graph: empty external source name")
		}
		extSet[name] = struct{}{}
	}

	byName := make(map[string]int, len(descs))
	bound := make([][]boundInput, len(descs))
	for i, d := range descs {
		if d.Name == "" {
			return nil, fmt.Errorf("pass graph: pass %d has no name", i)
		}
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("pass graph: duplicate pass %q", d.Name)
		}
		if _, clash := extSet[d.Name]; clash {
			return nil, fmt.Errorf("pass graph: pass %q shadows an external source", d.Name)
		}
		slots := make(map[int]struct{}, len(d.Inputs))
		for _, in := range d.Inputs {
			if in.Slot < 0 || in.Slot >= maxShaderImages {
				return nil, fmt.Errorf("pass %q: input slot %d out of range", d.Name, in.Slot)
			}
			if _, dup := slots[in.Slot]; dup {
				return nil, fmt.Errorf("pass %q: slot %d bound twice", d.Name, in.Slot)
			}
			slots[in.Slot] = struct{}{}
			if src, ok := byName[in.From]; ok {
				bound[i] = append(bound[i], boundInput{slot: in.Slot, passIdx: src})
				continue
			}
			if _, ok := extSet[in.From]; ok {
				bound[i] = append(bound[i], boundInput{slot: in.Slot, passIdx: -1, external: in.From})
				continue
			}
			// Either an unknown name or a forward reference; both break the
			// declared-order-is-execution-order contract.
			return nil, fmt.Errorf("pass %q: input %q does not name an earlier pass or external source", d.Name, in.From)
		}
		byName[d.Name] = i
	}

	g := &PassGraph{
		byName:    byName,
		externals: make(map[string]*ebiten.Image, len(externals)),
		w:         w,
		h:         h,
		order:     make([]string, 0, len(descs)),
	}
	for name := range extSet {
		g.externals[name] = nil
	}

	for i, d := range descs {
		shader, err := ebiten.NewShader([]byte(d.Source))
		if err != nil {
			g.Dispose()
			return nil, fmt.Errorf("compile pass %q: %w", d.Name, err)
		}
		p := renderPass{
			name:     d.Name,
			shader:   shader,
			inputs:   bound[i],
			toScreen: d.ToScreen,
		}
		if !d.ToScreen {
			p.target = ebiten.NewImage(w, h)
		}
		g.passes = append(g.passes, p)
	}
	return g, nil
}

// SetExternal registers the current image for a declared external source.
// The image must match the graph resolution.
func (g *PassGraph) SetExternal(name string, img *ebiten.Image) error {
	if _, ok := g.externals[name]; !ok {
		return fmt.Errorf("pass graph: unknown external source %q", name)
	}
	g.externals[name] = img
	return nil
}

// Output returns the framebuffer produced by the named pass, or nil for a
// screen pass. Later passes borrow these by texture handle; callers must
// not draw into them.
func (g *PassGraph) Output(name string) *ebiten.Image {
	i, ok := g.byName[name]
	if !ok {
		return nil
	}
	return g.passes[i].target
}

// Size returns the current framebuffer resolution.
func (g *PassGraph) Size() (int, int) { return g.w, g.h }

// Execute runs every pass in declared order. Each pass renders a full-target
// rect into its own framebuffer, or into screen when it was declared
// ToScreen. The uniforms callback supplies the per-pass uniform set; it may
// be nil for passes without uniforms.
func (g *PassGraph) Execute(screen *ebiten.Image, uniforms func(pass string) map[string]any) error {
	g.order = g.order[:0]
	for i := range g.passes {
		p := &g.passes[i]

		target := p.target
		if p.toScreen {
			if screen == nil {
				return fmt.Errorf("pass %q: declared ToScreen but no screen sink provided", p.name)
			}
			target = screen
		} else {
			target.Clear()
		}

		for s := range p.opts.Images {
			p.opts.Images[s] = nil
		}
		for _, in := range p.inputs {
			var img *ebiten.Image
			if in.passIdx >= 0 {
				img = g.passes[in.passIdx].target
			} else {
				img = g.externals[in.external]
				if img == nil {
					return fmt.Errorf("pass %q: external source %q not set", p.name, in.external)
				}
			}
			p.opts.Images[in.slot] = img
		}

		if uniforms != nil {
			p.opts.Uniforms = uniforms(p.name)
		} else {
			p.opts.Uniforms = nil
		}

		target.DrawRectShader(g.w, g.h, p.shader, &p.opts)
		g.order = append(g.order, p.name)
	}
	return nil
}

// ExecutionOrder returns the pass names executed by the most recent Execute
// call, in order. The slice is reused across frames.
func (g *PassGraph) ExecutionOrder() []string { return g.order }

// Resize reallocates every pass framebuffer at the new resolution. Must run
// before the next Execute after a canvas resize: a stale framebuffer means
// mismatched texture dimensions across passes, which is a correctness bug,
// not a performance one.
func (g *PassGraph) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == g.w && h == g.h) {
		return
	}
	g.w, g.h = w, h
	for i := range g.passes {
		if g.passes[i].target == nil {
			continue
		}
		g.passes[i].target.Deallocate()
		g.passes[i].target = ebiten.NewImage(w, h)
	}
}

// Dispose releases every framebuffer. The graph must not execute afterwards.
func (g *PassGraph) Dispose() {
	for i := range g.passes {
		if g.passes[i].target != nil {
			g.passes[i].target.Deallocate()
			g.passes[i].target = nil
		}
	}
	for name := range g.externals {
		g.externals[name] = nil
	}
}

// Names of the four fixed glass pipeline passes.
const (
	PassBackground = "background"
	PassBlurV      = "blurv"
	PassBlurH      = "blurh"
	PassGlass      = "glass"
)

// ExternalScene is the external source name the backdrop texture is
// registered under.
const ExternalScene = "scene"

// NewGlassGraph builds the fixed four-pass liquid glass pipeline:
// backdrop + SDF drop shadow, vertical then horizontal separable Gaussian
// blur, and the final composite sampling both the sharp and blurred
// backdrop.
func NewGlassGraph(w, h int) (*PassGraph, error) {
	return NewPassGraph(w, h, []string{ExternalScene}, []PassDesc{
		{Name: PassBackground, Source: backgroundShaderSrc, Inputs: []PassInput{{Slot: 0, From: ExternalScene}}},
		{Name: PassBlurV, Source: blurShaderSrc, Inputs: []PassInput{{Slot: 0, From: PassBackground}}},
		{Name: PassBlurH, Source: blurShaderSrc, Inputs: []PassInput{{Slot: 0, From: PassBlurV}}},
		{Name: PassGlass, Source: glassShaderSrc, ToScreen: true, Inputs: []PassInput{
			{Slot: 0, From: PassBackground},
			{Slot: 1, From: PassBlurH},
		}},
	})
}
