package oktay2d

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/pelletier/go-toml/v2"
)

const (
	defaultWindowWidth  = 640
	defaultWindowHeight = 480
)

// RunConfig configures the window and loop created by Run and NewGame.
// Zero fields take defaults.
type RunConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// TargetFrameRate is the rate delta time is normalized to. Default 60.
	TargetFrameRate float64 `toml:"target_frame_rate"`
	// Background is a color string the surface is filled with before every
	// frame. Empty means transparent.
	Background    string `toml:"background"`
	ShowFPS       bool   `toml:"show_fps"`
	Resizable     bool   `toml:"resizable"`
	ScreenshotDir string `toml:"screenshot_dir"`
	Debug         bool   `toml:"debug"`
}

// LoadRunConfig parses a TOML document into a RunConfig and fills defaults.
func LoadRunConfig(data []byte) (RunConfig, error) {
	var cfg RunConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

func (c *RunConfig) setDefaults() {
	if c.Width == 0 {
		c.Width = defaultWindowWidth
	}
	if c.Height == 0 {
		c.Height = defaultWindowHeight
	}
	if c.TargetFrameRate == 0 {
		c.TargetFrameRate = DefaultTargetFrameRate
	}
}

func (c RunConfig) validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("run config: negative size %dx%d: %w", c.Width, c.Height, ErrInvalidArgument)
	}
	if !isFinite(c.TargetFrameRate) || c.TargetFrameRate < 0 {
		return fmt.Errorf("run config: target frame rate %v: %w", c.TargetFrameRate, ErrInvalidArgument)
	}
	if c.Background != "" {
		if _, err := ParseColor(c.Background); err != nil {
			return fmt.Errorf("run config: background: %w", err)
		}
	}
	return nil
}

// Game is an ebiten.Game driving a Renderer through a SceneUpdater. The
// loop ends when the updater is stopped.
type Game struct {
	cfg       RunConfig
	renderer  *Renderer
	updater   *SceneUpdater
	scheduler *EbitenScheduler
	surface   *ImageContext
}

// NewGame attaches r to an ebiten-backed surface and creates its updater.
// The updater is started by Run.
func NewGame(r *Renderer, cfg RunConfig) (*Game, error) {
	if r == nil {
		return nil, fmt.Errorf("new game: nil renderer: %w", ErrInvalidArgument)
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Background != "" {
		c, _ := ParseColor(cfg.Background)
		r.SetClearColor(&c)
	}
	if cfg.ScreenshotDir != "" {
		r.ScreenshotDir = cfg.ScreenshotDir
	}
	r.SetDebugMode(cfg.Debug)

	sched := NewEbitenScheduler()
	u, err := NewSceneUpdater(r, sched)
	if err != nil {
		return nil, err
	}
	if err := u.SetTargetFrameRate(cfg.TargetFrameRate); err != nil {
		return nil, err
	}
	return &Game{
		cfg:       cfg,
		renderer:  r,
		updater:   u,
		scheduler: sched,
		surface:   NewImageContext(nil),
	}, nil
}

// Updater returns the game's SceneUpdater, for OnFrame subscriptions.
func (g *Game) Updater() *SceneUpdater { return g.updater }

// Renderer returns the renderer the game draws.
func (g *Game) Renderer() *Renderer { return g.renderer }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.updater.State() == UpdaterIdle {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game. It binds the screen as the drawing surface
// and dispatches the pending frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	if g.renderer.Context() != Context(g.surface) {
		if err := g.renderer.Attach(g.surface); err != nil {
			Logger().Error("attach screen", "err", err)
			return
		}
	}
	g.scheduler.Dispatch()
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %d\nTPS: %.1f", g.updater.FPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Resizable {
		return outsideWidth, outsideHeight
	}
	return g.cfg.Width, g.cfg.Height
}

// Run opens the window and blocks until the updater is stopped or the
// window is closed.
func (g *Game) Run() error {
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	if g.cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	g.updater.Start()
	err := ebiten.RunGame(g)
	g.updater.Stop()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Run is a convenience for NewGame followed by Game.Run. Subscribers in
// onFrame are registered before the loop starts.
func Run(r *Renderer, cfg RunConfig, onFrame ...FrameFunc) error {
	g, err := NewGame(r, cfg)
	if err != nil {
		return err
	}
	for _, fn := range onFrame {
		if err := g.updater.OnFrame(fn); err != nil {
			return err
		}
	}
	return g.Run()
}
