// Package coordinator is the producer/consumer barrier between the advance
// (writer) and sample (reader) sides of a running simulation: the single
// point external callers go through to read or mutate solarsystem state, so
// a partially-stepped body registry is never observed mid-batch. The writer
// task loop's Start/Stop/stopCh/WaitGroup shape follows the propagation loop
// in the orbital-mechanics reference this core's concurrency is built from,
// generalized from one propagating thread into the two-role barrier plus
// pause/resume the simulation/draw split calls for.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nicokuijpers/solarsystemsim/internal/corelog"
)

// pausePollInterval bounds how promptly a pause or stop request is noticed
// while the writer loop is already paused; it is unrelated to the batch
// sleep Speed governs.
const pausePollInterval = 20 * time.Millisecond

// Advancer is the subset of the solar system facade the writer task loop
// drives. Coordinator depends on this interface rather than the concrete
// facade so it can be driven by a fake in tests.
type Advancer interface {
	AdvanceForward(n int, fast bool) error
	AdvanceBackward(n int, fast bool) error
}

// Coordinator owns the advance thread (writer) and the barrier both the
// writer and any reader (sample) threads acquire around a batch. It carries
// no opinion about who drives the reader's animation tick; the caller owns
// that loop and calls Sample from it.
type Coordinator struct {
	barrier *Barrier
	state   Advancer
	log     *corelog.Logger

	mu     sync.Mutex
	speed  Speed
	paused bool

	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New builds a coordinator that drives state's writer task loop at speed.
func New(state Advancer, speed Speed) *Coordinator {
	return &Coordinator{
		barrier: NewBarrier(),
		state:   state,
		log:     corelog.New("coordinator"),
		speed:   speed,
		stopCh:  make(chan struct{}),
	}
}

// SetSpeed updates the sleep period the writer task loop applies between
// batches; it takes effect starting with the next sleep.
func (c *Coordinator) SetSpeed(speed Speed) {
	c.mu.Lock()
	c.speed = speed
	c.mu.Unlock()
}

func (c *Coordinator) currentSpeed() Speed {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Pause requests the advance thread suspend after its in-flight step
// completes. Idempotent.
func (c *Coordinator) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

// Resume re-enters the writer's acquire loop. Idempotent.
func (c *Coordinator) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
}

// Paused reports whether the advance thread is currently suspended between
// batches.
func (c *Coordinator) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Start launches the advance thread. It returns an error if already
// running rather than spawning a second writer loop.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("coordinator: advance thread already running")
	}
	c.running = true
	c.mu.Unlock()

	c.wg.Add(1)
	go c.writerLoop(ctx)
	c.log.Infof("advance thread started")
	return nil
}

// Stop hard-cancels the advance thread and waits for it to exit. The last
// published snapshot stays valid for readers; a paused coordinator stops
// immediately, since there is no in-flight step to let finish.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.mu.Unlock()

	close(c.stopCh)
	c.wg.Wait()
	c.log.Infof("advance thread stopped")
}

func (c *Coordinator) writerLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		default:
		}

		if c.Paused() {
			select {
			case <-ctx.Done():
				return
			case <-c.stopCh:
				return
			case <-time.After(pausePollInterval):
			}
			continue
		}

		if err := c.task(); err != nil {
			c.log.Warnf("advance step failed: %v", err)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case <-time.After(c.currentSpeed().interval()):
		}
	}
}

// task acquires the writer role, advances one batch, and releases. This is
// the sole place a batch is advanced, and the sole place Speed.Mode decides
// whether that batch runs at the fast multiplier.
func (c *Coordinator) task() error {
	fast := c.currentSpeed().Mode == FastSpeed
	c.barrier.StartSimulating()
	defer c.barrier.StopSimulating()
	return c.state.AdvanceForward(1, fast)
}

// StartDrawing acquires the reader role directly, for a caller that wants
// to bracket several reads itself rather than pass a closure to Sample.
func (c *Coordinator) StartDrawing() { c.barrier.StartDrawing() }

// StopDrawing releases the reader role acquired by StartDrawing.
func (c *Coordinator) StopDrawing() { c.barrier.StopDrawing() }

// StartSimulating acquires the writer role directly, for a caller that
// wants to bracket several mutations itself rather than pass a closure to
// Mutate.
func (c *Coordinator) StartSimulating() { c.barrier.StartSimulating() }

// StopSimulating releases the writer role acquired by StartSimulating.
func (c *Coordinator) StopSimulating() { c.barrier.StopSimulating() }

// Sample runs fn while holding the reader role, so fn observes a complete
// batch's published state rather than a partially-advanced one.
func (c *Coordinator) Sample(fn func()) {
	c.barrier.StartDrawing()
	defer c.barrier.StopDrawing()
	fn()
}

// Mutate runs fn while holding the writer role, for registry changes (add
// or remove a planet system or spacecraft) that must not race an in-flight
// sample or an in-flight advance batch.
func (c *Coordinator) Mutate(fn func() error) error {
	c.barrier.StartSimulating()
	defer c.barrier.StopSimulating()
	return fn()
}
