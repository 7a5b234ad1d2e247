package liquidglass

import "sync"

// Gate blocks "this frame is final" signals until the frame's asynchronous
// visual dependencies exist: the backdrop texture must have finished loading
// (or fallen back to the placeholder) and at least one full pass-graph
// execution must have completed. Each logical frame acquires its own token,
// so render mode can resolve frames independently; live mode never gates —
// it draws whatever texture state currently exists.
type Gate struct {
	mu           sync.Mutex
	textureReady bool
	drawn        bool
	failed       bool
	err          error
	tokens       []*Token
}

// Token represents one logical frame waiting on the gate.
type Token struct {
	g        *Gate
	released bool
	closed   bool
	done     chan struct{}
}

// NewGate creates a gate with no dependencies satisfied.
func NewGate() *Gate {
	return &Gate{}
}

// Acquire registers a new logical frame. Its Done channel closes once the
// gate's dependencies are satisfied and the token has been released, or
// immediately after the gate has failed.
func (g *Gate) Acquire() *Token {
	t := &Token{g: g, done: make(chan struct{})}
	g.mu.Lock()
	g.tokens = append(g.tokens, t)
	g.sweepLocked()
	g.mu.Unlock()
	return t
}

// Release marks the frame's own work complete. Safe to call more than once.
func (t *Token) Release() {
	t.g.mu.Lock()
	t.released = true
	t.g.sweepLocked()
	t.g.mu.Unlock()
}

// Done returns the channel that closes when the frame may be treated as
// final.
func (t *Token) Done() <-chan struct{} { return t.done }

// Err reports the gate failure, if any. Only meaningful after Done closes.
func (t *Token) Err() error {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	return t.g.err
}

// MarkTextureReady records that the backdrop texture is usable — either
// decoded successfully or permanently replaced by the placeholder. A missing
// decorative background must never block capture indefinitely.
func (g *Gate) MarkTextureReady() {
	g.mu.Lock()
	g.textureReady = true
	g.sweepLocked()
	g.mu.Unlock()
}

// MarkDrawn records that one full pass-graph execution has completed.
func (g *Gate) MarkDrawn() {
	g.mu.Lock()
	g.drawn = true
	g.sweepLocked()
	g.mu.Unlock()
}

// Fail signals a terminal failure (shader compilation, context loss). Every
// current and future token unblocks immediately, released or not, so callers
// proceed in a degraded no-render state instead of hanging. The first error
// wins.
func (g *Gate) Fail(err error) {
	g.mu.Lock()
	if !g.failed {
		g.failed = true
		g.err = err
	}
	g.sweepLocked()
	g.mu.Unlock()
}

// sweepLocked closes every token whose conditions are met. Tokens are
// removed once closed so the slice stays small across a long render.
func (g *Gate) sweepLocked() {
	depsReady := g.textureReady && g.drawn
	kept := g.tokens[:0]
	for _, t := range g.tokens {
		if g.failed || (depsReady && t.released) {
			if !t.closed {
				t.closed = true
				close(t.done)
			}
			continue
		}
		kept = append(kept, t)
	}
	g.tokens = kept
}
