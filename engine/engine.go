// Package engine runs the game loop and owns the shared services a
// game is built from: drawing surface, camera, input, sound, asset
// cache and save store. Games register levels under string keys and
// the engine drives them through a fixed per-frame order, applying
// level transitions and buffered entity mutations only at frame
// boundaries.
package engine

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/wesleyshynes/based-engine-2/asset"
	"github.com/wesleyshynes/based-engine-2/camera"
	"github.com/wesleyshynes/based-engine-2/draw"
	"github.com/wesleyshynes/based-engine-2/input"
	"github.com/wesleyshynes/based-engine-2/save"
	"github.com/wesleyshynes/based-engine-2/sound"
)

// maxDelta caps the per-frame elapsed time so a stalled frame (window
// dragged, machine asleep) does not turn into one huge simulation
// step.
const maxDelta = 0.1

type loadResult struct {
	seq uint64
	err error
}

// Engine is the game host. Create one with New, register levels, then
// Start it. All methods except SetLoadingProgress must be called from
// the goroutine running the game loop, which is where every level and
// entity hook runs.
type Engine struct {
	cfg    Config
	logger *log.Logger
	bg     color.RGBA

	surface *draw.Surface
	input   *input.State
	camera  *camera.Camera
	sound   *sound.Player
	store   *save.Store
	assets  *asset.Cache

	mu     sync.RWMutex
	levels map[string]LevelFunc

	level    Level
	levelKey string

	pending    string
	hasPending bool

	loading    atomic.Bool
	loadSeq    uint64
	loadCancel context.CancelFunc
	loadDone   chan loadResult

	progressMu  sync.Mutex
	progress    float64
	progressMsg string

	running bool
	stopped bool

	width  float64
	height float64

	ticked   bool
	lastTick time.Time
	elapsed  float64
	fps      float64
	fpsAccum float64
	fpsCount int
}

// New builds an engine from the config. It opens no window and makes
// no audio device; those appear when Start runs. A failing save store
// logs a warning and leaves saves disabled rather than failing the
// engine.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "engine",
	})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	e := &Engine{
		cfg:      cfg,
		logger:   logger,
		bg:       draw.Hex(cfg.Window.Background),
		surface:  draw.NewSurface(),
		input:    input.New(),
		camera:   camera.New(float64(cfg.Window.Width), float64(cfg.Window.Height)),
		assets:   asset.NewCache(logger),
		levels:   map[string]LevelFunc{},
		loadDone: make(chan loadResult, 4),
		width:    float64(cfg.Window.Width),
		height:   float64(cfg.Window.Height),
	}
	e.surface.SetPixelPerfect(cfg.Window.PixelPerfect)

	e.sound = sound.NewPlayer(cfg.Sound.SampleRate, logger)
	e.sound.SetFetch(e.assets.Bytes)
	e.sound.SetMuted(cfg.Sound.Muted)

	e.input.SetWorldConverter(e.camera.ScreenToWorld)

	store, err := save.Open(cfg.Save.Path, cfg.Save.Namespace, logger)
	if err != nil {
		logger.Warn("save store unavailable, progress will not persist", "error", err)
	} else {
		e.store = store
	}

	return e
}

// Config returns the resolved configuration the engine runs with.
func (e *Engine) Config() Config { return e.cfg }

// Log returns the engine logger.
func (e *Engine) Log() *log.Logger { return e.logger }

// Camera returns the world camera.
func (e *Engine) Camera() *camera.Camera { return e.camera }

// Input returns the unified keyboard, mouse and touch state.
func (e *Engine) Input() *input.State { return e.input }

// Sound returns the audio player.
func (e *Engine) Sound() *sound.Player { return e.sound }

// Save returns the persistent store. It is nil when the store could
// not be opened; the nil store accepts all calls and does nothing.
func (e *Engine) Save() *save.Store { return e.store }

// Assets returns the asset cache.
func (e *Engine) Assets() *asset.Cache { return e.assets }

// Size returns the current logical canvas size.
func (e *Engine) Size() (w, h float64) { return e.width, e.height }

// Elapsed returns total seconds of simulated time since Start.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// FPS returns the frame rate, recomputed once per second.
func (e *Engine) FPS() float64 { return e.fps }

// Running reports whether the game loop is active.
func (e *Engine) Running() bool { return e.running }

// Loading reports whether a level preload is in flight.
func (e *Engine) Loading() bool { return e.loading.Load() }

// ActiveLevel returns the current level, or nil before the first
// transition lands.
func (e *Engine) ActiveLevel() Level { return e.level }

// ActiveLevelKey returns the registry key of the current level, or
// empty.
func (e *Engine) ActiveLevelKey() string { return e.levelKey }

// LoadLevel requests a transition to the registered level. The switch
// happens at the start of the next frame: the outgoing level is torn
// down, the new one is constructed and its Preload runs off the loop,
// with a progress screen shown until Create completes. An unregistered
// key logs an error and leaves the current level in place. A second
// request before the first lands supersedes it.
func (e *Engine) LoadLevel(key string) {
	e.pending = key
	e.hasPending = true
}

// Stop asks the loop to exit. The current Start call returns after
// the frame in progress. Safe to call repeatedly.
func (e *Engine) Stop() {
	if e.stopped {
		return
	}
	e.stopped = true
	e.logger.Info("stop requested")
}

// Close releases the engine's resources. Call it after Start has
// returned.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// Start opens the window and blocks running the game loop until Stop
// is called or the window closes. The initial level is requested as if
// by LoadLevel, so an unregistered key still starts the loop, on an
// empty background. Calling Start on a running engine does nothing.
func (e *Engine) Start(initial string) error {
	if e.running {
		return nil
	}
	e.running = true
	e.stopped = false
	e.ticked = false
	e.elapsed = 0
	e.fps = 0
	e.fpsAccum = 0
	e.fpsCount = 0

	if initial != "" {
		e.LoadLevel(initial)
	}

	ebiten.SetWindowTitle(e.cfg.Window.Title)
	ebiten.SetWindowSize(e.cfg.Window.Width, e.cfg.Window.Height)
	ebiten.SetTPS(e.cfg.Loop.TPS)
	ebiten.SetFullscreen(e.cfg.Window.Fullscreen)
	if e.cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	e.logger.Info("starting",
		"title", e.cfg.Window.Title,
		"size", fmt.Sprintf("%dx%d", e.cfg.Window.Width, e.cfg.Window.Height),
		"tps", e.cfg.Loop.TPS,
	)

	err := ebiten.RunGame(e)
	e.running = false
	if err != nil {
		return fmt.Errorf("engine: run: %w", err)
	}
	return nil
}

// Update advances one frame. It implements ebiten.Game.
func (e *Engine) Update() error {
	if e.stopped {
		return ebiten.Termination
	}
	dt := e.tickDelta()
	e.input.Update()
	e.Advance(dt)
	return nil
}

// tickDelta measures real time since the previous tick, capped at
// maxDelta. The first tick reports zero.
func (e *Engine) tickDelta() float64 {
	now := time.Now()
	if !e.ticked {
		e.ticked = true
		e.lastTick = now
		return 0
	}
	dt := now.Sub(e.lastTick).Seconds()
	e.lastTick = now
	if dt > maxDelta {
		dt = maxDelta
	}
	return dt
}

// Advance runs one frame of simulation: clock and fps bookkeeping,
// the pending level transition, completed preloads, camera and sound,
// and finally the level itself. The game loop calls it with measured
// frame time; calling it directly drives the engine without a window,
// which is how the tests run.
func (e *Engine) Advance(dt float64) {
	e.elapsed += dt
	e.fpsCount++
	e.fpsAccum += dt
	if e.fpsAccum >= 1 {
		e.fps = float64(e.fpsCount) / e.fpsAccum
		e.fpsCount = 0
		e.fpsAccum = 0
	}

	e.applyPendingLevel()
	e.drainLoads()

	e.camera.Update(dt)
	e.sound.Update(dt)

	if !e.loading.Load() && e.level != nil {
		base := e.level.Base()
		base.flush()
		e.level.Update(dt)
		base.updateEntities(dt)
	}
}

// applyPendingLevel performs a requested transition: tear down the
// outgoing level synchronously, construct the incoming one and kick
// off its Preload on a separate goroutine.
func (e *Engine) applyPendingLevel() {
	if !e.hasPending {
		return
	}
	key := e.pending
	e.hasPending = false

	fn, ok := e.levelFunc(key)
	if !ok {
		e.logger.Error("level not registered", "level", key)
		return
	}

	if e.loadCancel != nil {
		e.loadCancel()
		e.loadCancel = nil
	}
	if e.level != nil {
		e.destroyLevel()
	}

	lvl := fn(e)
	if lvl == nil {
		e.logger.Error("level constructor returned nil", "level", key)
		return
	}
	lvl.Base().bind(e)
	e.level = lvl
	e.levelKey = key
	e.loading.Store(true)
	e.resetProgress()

	e.loadSeq++
	seq := e.loadSeq
	ctx, cancel := context.WithCancel(context.Background())
	e.loadCancel = cancel
	e.logger.Debug("loading level", "level", key)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				e.loadDone <- loadResult{seq: seq, err: fmt.Errorf("preload panic: %v", r)}
			}
		}()
		e.loadDone <- loadResult{seq: seq, err: lvl.Preload(ctx)}
	}()
}

func (e *Engine) destroyLevel() {
	key := e.levelKey
	e.level.Base().teardown()
	e.level.Destroy()
	e.level = nil
	e.levelKey = ""
	e.logger.Debug("level destroyed", "level", key)
}

// drainLoads commits finished preloads. Results from a superseded
// transition carry an old sequence number and are dropped, so only
// the most recent request ever creates a level. A result landing
// after Stop is also dropped.
func (e *Engine) drainLoads() {
	for {
		select {
		case res := <-e.loadDone:
			e.commitLoad(res)
		default:
			return
		}
	}
}

func (e *Engine) commitLoad(res loadResult) {
	if res.seq != e.loadSeq {
		e.logger.Debug("dropping superseded level load")
		return
	}
	if e.stopped || e.level == nil {
		e.loading.Store(false)
		return
	}
	if res.err != nil {
		e.logger.Error("level preload failed", "level", e.levelKey, "error", res.err)
		e.loading.Store(false)
		return
	}
	e.finishLoad()
}

// finishLoad runs the level's Create on the loop goroutine, marks the
// level initialized and delivers the initial resize. A panic in Create
// is logged and the loading screen still comes down, leaving the level
// partially initialized rather than killing the loop.
func (e *Engine) finishLoad() {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("level create panicked", "level", e.levelKey, "error", r)
		}
		e.loading.Store(false)
	}()
	e.level.Create()
	e.level.Base().initialized = true
	e.level.Base().broadcastResize(e.width, e.height)
	e.level.Resize(e.width, e.height)
	e.logger.Debug("level ready", "level", e.levelKey)
}

// SetLoadingProgress reports preload progress for the loading screen.
// The fraction is clamped to [0, 1]; an optional message replaces the
// default label. Calls outside a load are ignored. Safe to call from
// the preload goroutine.
func (e *Engine) SetLoadingProgress(frac float64, msg ...string) {
	if !e.loading.Load() {
		return
	}
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	e.progressMu.Lock()
	e.progress = frac
	if len(msg) > 0 {
		e.progressMsg = msg[0]
	}
	e.progressMu.Unlock()
}

// LoadingProgress returns the current progress fraction and message.
func (e *Engine) LoadingProgress() (float64, string) {
	e.progressMu.Lock()
	defer e.progressMu.Unlock()
	return e.progress, e.progressMsg
}

func (e *Engine) resetProgress() {
	e.progressMu.Lock()
	e.progress = 0
	e.progressMsg = ""
	e.progressMu.Unlock()
}

// Draw renders one frame. It implements ebiten.Game.
func (e *Engine) Draw(screen *ebiten.Image) {
	s := e.surface
	s.Begin(screen)
	s.Fill(e.bg)

	if e.loading.Load() {
		e.drawLoading(s)
	} else if e.level != nil {
		base := e.level.Base()
		s.Push(e.camera.Transform())
		e.level.Draw(s)
		base.drawEntities(s)
		s.Pop()
		base.drawEntitiesUI(s)
		e.level.DrawUI(s)
	}

	if e.cfg.Debug {
		e.drawDebug(screen)
	}
}

var (
	loadingBar  = color.RGBA{R: 0x6e, G: 0x9f, B: 0xff, A: 0xff}
	loadingText = color.RGBA{R: 0xe4, G: 0xe4, B: 0xec, A: 0xff}
	loadingDim  = color.RGBA{R: 0x8a, G: 0x8a, B: 0x9c, A: 0xff}
)

func (e *Engine) drawLoading(s *draw.Surface) {
	frac, msg := e.LoadingProgress()
	if msg == "" {
		msg = "loading"
	}
	w, h := e.width, e.height
	barW := w * 0.5
	barH := 16.0
	x := (w - barW) / 2
	y := h / 2

	s.TextCentered(e.cfg.Window.Title, w/2, h/3, 28, loadingText)
	if frac > 0 {
		s.FillRect(x, y, barW*frac, barH, loadingBar)
	}
	s.StrokeRect(x, y, barW, barH, 2, loadingDim)
	s.TextCentered(msg, w/2, y+barH+16, 14, loadingDim)
}

func (e *Engine) drawDebug(screen *ebiten.Image) {
	key := "-"
	count := 0
	if e.level != nil {
		key = e.levelKey
		count = e.level.Base().Count()
	}
	msg := fmt.Sprintf("fps %.0f tps %.0f\nlevel %s entities %d\nelapsed %.1fs",
		e.fps, ebiten.ActualTPS(), key, count, e.elapsed)
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}

// Layout reports the logical canvas size and reacts to window
// resizes. It implements ebiten.Game.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth, outsideHeight
	if e.cfg.Window.PixelPerfect || w <= 0 || h <= 0 {
		w, h = e.cfg.Window.Width, e.cfg.Window.Height
	}
	if fw, fh := float64(w), float64(h); fw != e.width || fh != e.height {
		e.resize(fw, fh)
	}
	return w, h
}

// resize updates the canvas size, the camera viewport, and notifies
// the level: entities first, then the level hook.
func (e *Engine) resize(w, h float64) {
	e.width, e.height = w, h
	e.camera.SetViewport(w, h)
	if e.level != nil && !e.loading.Load() {
		e.level.Base().broadcastResize(w, h)
		e.level.Resize(w, h)
	}
}
