package oktay2d

import "time"

// frameStats holds per-frame counters. Only logged when the renderer is in
// debug mode.
type frameStats struct {
	frameTime time.Duration
	total     int
	drawn     int
	culled    int
	forced    int
	visible   int
}

// debugLog reports frame stats at debug level.
func (r *Renderer) debugLog(stats frameStats) {
	if !r.debug {
		return
	}
	Logger().Debug("frame",
		"time", stats.frameTime,
		"drawables", stats.total,
		"drawn", stats.drawn,
		"culled", stats.culled,
		"forced", stats.forced,
		"visible", stats.visible,
	)
}

// SetDebugMode enables or disables per-frame stats. Stats are logged at
// debug level through the logger installed with SetLogger.
func (r *Renderer) SetDebugMode(enabled bool) {
	r.debug = enabled
}

// Stats returns the counters of the most recent frame: drawables
// considered, drawn, culled and force-rendered.
func (r *Renderer) Stats() (total, drawn, culled, forced int) {
	s := r.lastStats
	return s.total, s.drawn, s.culled, s.forced
}
