package mt19937

import "sync"

// Locked wraps a Generator with a mutex so a single stream can be shared
// between goroutines. The interleaving of draws between goroutines is not
// deterministic; use one Generator per goroutine when reproducibility matters.
type Locked struct {
	mu sync.Mutex
	g  *Generator
}

// NewLocked creates a Locked generator seeded with seed.
func NewLocked(seed uint32) *Locked {
	return &Locked{g: New(seed)}
}

// Uint32 returns the next value of the shared stream.
func (l *Locked) Uint32() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.g.Uint32()
}

// Export returns a snapshot of the shared generator's state.
func (l *Locked) Export() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.g.Export()
}
