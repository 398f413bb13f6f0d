package coordinator

import "sync"

// Barrier enforces the core's single-writer/single-reader invariant: at any
// instant at most one of drawing, simulating is true. StartDrawing and
// StartSimulating suspend the caller until the other role is inactive, then
// set their own flag; StopDrawing and StopSimulating clear it and wake
// whichever side is waiting.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	drawing    bool
	simulating bool
}

// NewBarrier returns a barrier with neither role active.
func NewBarrier() *Barrier {
	b := &Barrier{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// StartDrawing acquires the reader role, blocking while a writer is active.
func (b *Barrier) StartDrawing() {
	b.mu.Lock()
	for b.simulating {
		b.cond.Wait()
	}
	b.drawing = true
	b.mu.Unlock()
}

// StopDrawing releases the reader role.
func (b *Barrier) StopDrawing() {
	b.mu.Lock()
	b.drawing = false
	b.cond.Broadcast()
	b.mu.Unlock()
}

// StartSimulating acquires the writer role, blocking while either role is
// active (a reader, or another writer).
func (b *Barrier) StartSimulating() {
	b.mu.Lock()
	for b.drawing || b.simulating {
		b.cond.Wait()
	}
	b.simulating = true
	b.mu.Unlock()
}

// StopSimulating releases the writer role.
func (b *Barrier) StopSimulating() {
	b.mu.Lock()
	b.simulating = false
	b.cond.Broadcast()
	b.mu.Unlock()
}
