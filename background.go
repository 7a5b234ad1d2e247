package liquidglass

import (
	"fmt"
	"image"
	"os"

	// Backdrop files are decorative photos; accept the two formats the
	// editor exports.
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
)

// Checkerboard cell size and shades for the placeholder backdrop.
const checkerCell = 24

var (
	checkerDark  = [4]byte{0x26, 0x28, 0x30, 0xff}
	checkerLight = [4]byte{0x33, 0x36, 0x40, 0xff}
)

type backgroundResult struct {
	img  image.Image
	err  error
	path string
}

// Background owns the canvas-sized backdrop texture the pass graph samples.
// The image file decodes on its own goroutine; the decoded result is handed
// back over a channel and uploaded from Poll on the render goroutine, so all
// GPU work stays on ebiten's scheduler. Until then (or forever, if the load
// fails) the texture shows a checkerboard placeholder.
type Background struct {
	canvas  *ebiten.Image
	source  *ebiten.Image
	w, h    int
	ready   bool
	pending chan backgroundResult
	onReady func()
	pixBuf  []byte
}

// NewBackground creates a backdrop of the given size showing the
// checkerboard placeholder.
func NewBackground(w, h int) *Background {
	b := &Background{
		canvas: ebiten.NewImage(w, h),
		w:      w,
		h:      h,
	}
	b.drawChecker()
	return b
}

// OnReady registers a callback invoked once, on the render goroutine, when
// the backdrop reaches its final state (texture uploaded or placeholder
// made permanent). Typically wired to Gate.MarkTextureReady.
func (b *Background) OnReady(fn func()) {
	b.onReady = fn
}

// LoadFile starts decoding the backdrop image asynchronously. An empty path
// means the placeholder IS the backdrop: the background is ready at once.
func (b *Background) LoadFile(path string) {
	if path == "" {
		b.markReady()
		return
	}
	b.pending = make(chan backgroundResult, 1)
	go func(ch chan backgroundResult) {
		f, err := os.Open(path)
		if err != nil {
			ch <- backgroundResult{err: err, path: path}
			return
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		ch <- backgroundResult{img: img, err: err, path: path}
	}(b.pending)
}

// Poll checks for a finished decode and uploads it. Call once per tick from
// the render goroutine. A decode failure logs once and makes the placeholder
// permanent — a missing decorative backdrop must not block rendering.
func (b *Background) Poll() {
	if b.pending == nil {
		return
	}
	select {
	case res := <-b.pending:
		b.pending = nil
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "[liquidglass] background %s: %v (using placeholder)\n", res.path, res.err)
			b.markReady()
			return
		}
		b.source = ebiten.NewImageFromImage(res.img)
		b.drawCover()
		b.markReady()
	default:
	}
}

func (b *Background) markReady() {
	if b.ready {
		return
	}
	b.ready = true
	if b.onReady != nil {
		b.onReady()
	}
}

// Ready reports whether the backdrop has reached its final state.
func (b *Background) Ready() bool { return b.ready }

// Image returns the canvas-sized backdrop texture. Always non-nil and always
// matching the current resolution, so it can be bound unconditionally.
func (b *Background) Image() *ebiten.Image { return b.canvas }

// Resize reallocates the canvas at the new resolution and repaints it from
// whatever source state currently exists.
func (b *Background) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == b.w && h == b.h) {
		return
	}
	b.canvas.Deallocate()
	b.canvas = ebiten.NewImage(w, h)
	b.w, b.h = w, h
	if b.source != nil {
		b.drawCover()
	} else {
		b.drawChecker()
	}
}

// Dispose releases the GPU textures.
func (b *Background) Dispose() {
	if b.canvas != nil {
		b.canvas.Deallocate()
		b.canvas = nil
	}
	if b.source != nil {
		b.source.Deallocate()
		b.source = nil
	}
}

// drawChecker fills the canvas with the placeholder pattern.
func (b *Background) drawChecker() {
	needed := b.w * b.h * 4
	if cap(b.pixBuf) < needed {
		b.pixBuf = make([]byte, needed)
	} else {
		b.pixBuf = b.pixBuf[:needed]
	}
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			c := checkerDark
			if (x/checkerCell+y/checkerCell)%2 == 0 {
				c = checkerLight
			}
			off := (y*b.w + x) * 4
			b.pixBuf[off+0] = c[0]
			b.pixBuf[off+1] = c[1]
			b.pixBuf[off+2] = c[2]
			b.pixBuf[off+3] = c[3]
		}
	}
	b.canvas.WritePixels(b.pixBuf)
}

// drawCover scales the source to fill the canvas, cropping the overflow
// (CSS cover semantics), centered.
func (b *Background) drawCover() {
	sb := b.source.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	scale := float64(b.w) / sw
	if s := float64(b.h) / sh; s > scale {
		scale = s
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(b.w)-sw*scale)/2, (float64(b.h)-sh*scale)/2)
	op.Filter = ebiten.FilterLinear
	b.canvas.Clear()
	b.canvas.DrawImage(b.source, &op)
}
