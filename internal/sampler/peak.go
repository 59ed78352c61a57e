package sampler

import "sync"

// Peak holds the maximum total resident memory observed so far, in
// megabytes. Its value never decreases.
type Peak struct {
	mu sync.Mutex
	mb float64
}

// NewPeak creates a Peak starting at zero.
func NewPeak() *Peak {
	return &Peak{}
}

// Observe records a total if it exceeds the current maximum.
func (p *Peak) Observe(mb float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if mb > p.mb {
		p.mb = mb
	}
}

// Value returns the maximum observed so far.
func (p *Peak) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mb
}
