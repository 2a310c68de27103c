package oktay2d

import (
	"fmt"
	"runtime/debug"
	"time"
)

// DefaultTargetFrameRate is the frame rate delta time is normalized to.
const DefaultTargetFrameRate = 60

// fpsWindow is the span of the rolling FPS window.
const fpsWindow = time.Second

// UpdaterState is the lifecycle state of a SceneUpdater.
type UpdaterState uint8

const (
	UpdaterIdle      UpdaterState = iota // no frame requested
	UpdaterScheduled                     // a frame request is pending
	UpdaterRunning                       // inside a tick
)

func (s UpdaterState) String() string {
	switch s {
	case UpdaterIdle:
		return "idle"
	case UpdaterScheduled:
		return "scheduled"
	case UpdaterRunning:
		return "running"
	default:
		return fmt.Sprintf("UpdaterState(%d)", uint8(s))
	}
}

// FrameFunc is a per-frame subscriber. dt is the normalized delta time.
type FrameFunc func(dt float64)

// SceneUpdater drives the frame loop for one Renderer: each tick it
// schedules the next one, measures delta time, advances camera animations,
// clears and redraws the renderer, notifies subscribers and updates the
// rolling FPS count.
type SceneUpdater struct {
	id        string
	renderer  *Renderer
	scheduler Scheduler

	state  UpdaterState
	handle FrameHandle

	targetFrameRate float64
	deltaTime       float64
	lastTimestamp   time.Duration

	times []time.Duration
	fps   int

	subscribers []FrameFunc
	subBuf      []FrameFunc
}

// NewSceneUpdater creates an idle updater. Call Start to begin the loop.
func NewSceneUpdater(r *Renderer, s Scheduler) (*SceneUpdater, error) {
	if r == nil {
		return nil, fmt.Errorf("new scene updater: nil renderer: %w", ErrInvalidArgument)
	}
	if s == nil {
		return nil, fmt.Errorf("new scene updater: nil scheduler: %w", ErrInvalidArgument)
	}
	return &SceneUpdater{
		id:              NewID(idLength),
		renderer:        r,
		scheduler:       s,
		targetFrameRate: DefaultTargetFrameRate,
	}, nil
}

// ID returns the updater's random id.
func (u *SceneUpdater) ID() string { return u.id }

// Renderer returns the renderer this updater drives.
func (u *SceneUpdater) Renderer() *Renderer { return u.renderer }

// State returns the current lifecycle state.
func (u *SceneUpdater) State() UpdaterState { return u.state }

// FPS returns the number of frames in the last second.
func (u *SceneUpdater) FPS() int { return u.fps }

// DeltaTime returns the normalized delta of the most recent tick: 1.0 means
// exactly one frame at the target frame rate elapsed.
func (u *SceneUpdater) DeltaTime() float64 { return u.deltaTime }

// TargetFrameRate returns the frame rate delta time is normalized to.
func (u *SceneUpdater) TargetFrameRate() float64 { return u.targetFrameRate }

// SetTargetFrameRate changes the normalization rate. fps must be finite and
// positive.
func (u *SceneUpdater) SetTargetFrameRate(fps float64) error {
	if !isFinite(fps) || fps <= 0 {
		return fmt.Errorf("set target frame rate %v: %w", fps, ErrInvalidArgument)
	}
	u.targetFrameRate = fps
	return nil
}

// OnFrame appends fn to the subscriber list. Subscribers run in
// registration order after the frame is drawn. A subscriber added during a
// tick first runs on the next tick.
func (u *SceneUpdater) OnFrame(fn FrameFunc) error {
	if fn == nil {
		return fmt.Errorf("on frame: nil callback: %w", ErrInvalidArgument)
	}
	u.subscribers = append(u.subscribers, fn)
	return nil
}

// Start requests the first frame. It is a no-op unless the updater is idle.
func (u *SceneUpdater) Start() {
	if u.state != UpdaterIdle {
		return
	}
	u.lastTimestamp = u.scheduler.Now()
	u.handle = u.scheduler.RequestFrame(u.tick)
	u.state = UpdaterScheduled
}

// Stop cancels the pending frame request and returns to idle. Calling Stop
// from a subscriber ends the loop after the current tick.
func (u *SceneUpdater) Stop() {
	if u.state == UpdaterIdle {
		return
	}
	u.scheduler.CancelFrame(u.handle)
	u.handle = 0
	u.state = UpdaterIdle
}

// tick is one iteration of the loop.
func (u *SceneUpdater) tick(now time.Duration) {
	u.state = UpdaterRunning
	u.handle = u.scheduler.RequestFrame(u.tick)

	elapsed := now - u.lastTimestamp
	if elapsed < 0 {
		elapsed = 0
	}
	frameDur := float64(time.Second) / u.targetFrameRate
	u.deltaTime = float64(elapsed) / frameDur
	u.lastTimestamp = now

	if u.renderer.Context() != nil {
		u.render(elapsed)
	}

	u.subBuf = append(u.subBuf[:0], u.subscribers...)
	for _, fn := range u.subBuf {
		u.notify(fn)
	}
	clear(u.subBuf)

	cutoff := now - fpsWindow
	i := 0
	for i < len(u.times) && u.times[i] <= cutoff {
		i++
	}
	u.times = append(u.times[:0], u.times[i:]...)
	u.times = append(u.times, now)
	u.fps = len(u.times)

	if u.state == UpdaterRunning {
		u.state = UpdaterScheduled
	}
}

// render advances camera animations and draws one frame. A panicking
// drawable is logged and the loop continues.
func (u *SceneUpdater) render(elapsed time.Duration) {
	defer func() {
		if rec := recover(); rec != nil {
			Logger().Error("render panicked", "updater", u.id, "panic", rec, "stack", string(debug.Stack()))
		}
	}()
	if cam := u.renderer.Camera(); cam != nil && cam.Animating() {
		cam.update(float32(elapsed.Seconds()))
	}
	u.renderer.Clear()
	if err := u.renderer.RenderFrame(u.deltaTime); err != nil {
		Logger().Warn("render frame", "updater", u.id, "err", err)
	}
}

// notify runs one subscriber, isolating a panic so later subscribers and the
// loop are unaffected.
func (u *SceneUpdater) notify(fn FrameFunc) {
	defer func() {
		if rec := recover(); rec != nil {
			Logger().Error("frame subscriber panicked", "updater", u.id, "panic", rec, "stack", string(debug.Stack()))
		}
	}()
	fn(u.deltaTime)
}
