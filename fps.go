package oktay2d

import "fmt"

// fpsRefreshSeconds is how often an FPSLabel re-reads the updater.
const fpsRefreshSeconds = 0.5

// FPSLabel is a Label showing the frame rate measured by a SceneUpdater.
// It is force-rendered so panning the camera never culls it, and refreshes
// its text about twice a second.
type FPSLabel struct {
	Label
	updater *SceneUpdater
	elapsed float64 // normalized frames since the last refresh
}

// NewFPSLabel creates a label at (x, y) reporting u's frame rate.
func NewFPSLabel(x, y float64, u *SceneUpdater) *FPSLabel {
	l := &FPSLabel{Label: *NewLabel(x, y, "FPS: 0", ColorWhite), updater: u}
	l.ForceRender = true
	return l
}

// Update implements Updater.
func (l *FPSLabel) Update(ctx Context, dt float64) {
	if l.updater == nil {
		return
	}
	l.elapsed += dt
	if l.elapsed < fpsRefreshSeconds*l.updater.TargetFrameRate() {
		return
	}
	l.elapsed = 0
	l.Text = fmt.Sprintf("FPS: %d", l.updater.FPS())
}
