// Package oktay2d is a small 2D scene library for [Ebitengine].
//
// A [Renderer] owns an ordered list of [Drawable] values and paints them,
// back to front, through an immediate-mode [Context]. An optional [Camera]
// translates and scales the view and culls drawables whose origin falls
// outside it. A [SceneUpdater] drives the frame loop: it measures delta
// time, clears and redraws the renderer, and notifies per-frame subscribers.
//
// # Quick start
//
//	r := oktay2d.NewRenderer()
//	box := oktay2d.NewRectangle(100, 100, 40, 40, oktay2d.MustParseColor("#50b4ff"))
//	r.Add(box)
//
//	oktay2d.Run(r, oktay2d.RunConfig{Title: "Demo", Width: 640, Height: 480},
//		func(dt float64) { box.X += 2 * dt })
//
// Delta time is normalized to the target frame rate: 1.0 means exactly one
// frame at 60 fps elapsed, 2.0 means the frame took twice as long.
//
// # Drawables
//
// Draw is the only required method. Optional interfaces add behavior:
// [Updater] runs after Draw, [Bounded] opts into culling, [ForceRenderer]
// bypasses it and [VisibilityReceiver] is told the culling result. Embed
// [Object] to get all of them.
//
// # Headless use
//
// [ManualScheduler] advances frames and the clock explicitly, and any type
// implementing [Context] can stand in for the ebiten surface.
//
// [Ebitengine]: https://ebitengine.org
package oktay2d
