package gazetribe

import "sync"

// calibProgress tracks an in-flight calibration run: total points, points
// processed so far, and whether a run is active. It is local bookkeeping
// driven by dispatch events and issues no wire traffic.
type calibProgress struct {
	mu        sync.Mutex
	points    int
	processed int
	active    bool
}

func (p *calibProgress) start(points int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.points = points
	p.processed = 0
	p.active = true
}

// pointEnd records one more processed point and returns the new progress.
func (p *calibProgress) pointEnd() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed++
	return p.progressLocked()
}

func (p *calibProgress) progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progressLocked()
}

func (p *calibProgress) progressLocked() float64 {
	if p.points == 0 {
		return 0
	}
	return float64(p.processed) / float64(p.points)
}

func (p *calibProgress) done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed == p.points
}

func (p *calibProgress) calibrating() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *calibProgress) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.points = 0
	p.processed = 0
	p.active = false
}
