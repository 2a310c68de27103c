package oktay2d

import "time"

// FrameHandle identifies a pending frame request. The zero handle is never
// issued.
type FrameHandle uint64

// FrameCallback receives a monotonic timestamp measured from the
// scheduler's epoch.
type FrameCallback func(now time.Duration)

// Scheduler is the host's "next frame" primitive. Callbacks requested while
// a frame is being dispatched run on the following frame, never the current
// one.
type Scheduler interface {
	RequestFrame(fn FrameCallback) FrameHandle
	CancelFrame(h FrameHandle)
	Now() time.Duration
}

type frameRequest struct {
	handle FrameHandle
	fn     FrameCallback
}

// frameQueue holds pending requests in request order.
type frameQueue struct {
	next    FrameHandle
	pending []frameRequest
	running []frameRequest
}

func (q *frameQueue) request(fn FrameCallback) FrameHandle {
	q.next++
	q.pending = append(q.pending, frameRequest{handle: q.next, fn: fn})
	return q.next
}

func (q *frameQueue) cancel(h FrameHandle) {
	for i, req := range q.pending {
		if req.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// Cancelling a request in the batch being dispatched prevents it from
	// running if it has not run yet.
	for i := range q.running {
		if q.running[i].handle == h {
			q.running[i].fn = nil
			return
		}
	}
}

// dispatch runs every request pending at call time.
func (q *frameQueue) dispatch(now time.Duration) int {
	q.running, q.pending = q.pending, q.running[:0]
	ran := 0
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn(now)
		ran++
	}
	q.running = q.running[:0]
	return ran
}

// ManualScheduler is a Scheduler whose clock and frames are advanced by the
// caller. Use it for headless rendering and deterministic tests.
type ManualScheduler struct {
	queue frameQueue
	now   time.Duration
}

// NewManualScheduler creates a scheduler with its clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) RequestFrame(fn FrameCallback) FrameHandle {
	return s.queue.request(fn)
}

func (s *ManualScheduler) CancelFrame(h FrameHandle) {
	s.queue.cancel(h)
}

func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of requests waiting for the next frame.
func (s *ManualScheduler) Pending() int {
	return len(s.queue.pending)
}

// Frame sets the clock to now and dispatches one frame. It returns the number
// of callbacks run. The clock never moves backwards.
func (s *ManualScheduler) Frame(now time.Duration) int {
	if now > s.now {
		s.now = now
	}
	return s.queue.dispatch(s.now)
}

// Advance moves the clock forward by d and dispatches one frame.
func (s *ManualScheduler) Advance(d time.Duration) int {
	return s.Frame(s.now + d)
}

// EbitenScheduler dispatches frame requests from ebiten's Draw callback.
// Game wires it up; other ebiten.Game implementations call Dispatch from
// their own Draw.
type EbitenScheduler struct {
	queue frameQueue
	epoch time.Time
}

// NewEbitenScheduler creates a scheduler whose clock starts now.
func NewEbitenScheduler() *EbitenScheduler {
	return &EbitenScheduler{epoch: time.Now()}
}

func (s *EbitenScheduler) RequestFrame(fn FrameCallback) FrameHandle {
	return s.queue.request(fn)
}

func (s *EbitenScheduler) CancelFrame(h FrameHandle) {
	s.queue.cancel(h)
}

// Now returns the monotonic time since the scheduler was created.
func (s *EbitenScheduler) Now() time.Duration {
	return time.Since(s.epoch)
}

// Dispatch runs every pending request. Call once per ebiten Draw.
func (s *EbitenScheduler) Dispatch() int {
	return s.queue.dispatch(s.Now())
}
