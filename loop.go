package reel

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// UpdateFunc is the per-tick game logic. It runs with the model locked and
// may freely read and mutate clips and the display list.
type UpdateFunc func(t *Tick)

// Tick is what an UpdateFunc sees: the tick index, the input snapshot taken
// for this tick, and the model.
type Tick struct {
	// Index counts ticks from 0.
	Index uint64
	// DT is the fixed tick period in seconds, for tweens.
	DT float32

	Input    *InputState
	List     *DisplayList
	Renderer *Renderer
}

// Loop drives a DisplayList at a fixed rate. A single mutex guards the list
// and every clip in it; Tick, Render and Do each hold it for their whole
// duration, so no update ever interleaves with another update or a render.
type Loop struct {
	// OnFrame, if set, is called at the end of every tick, still locked.
	OnFrame func(index uint64)

	mu       sync.Mutex
	cfg      Config
	list     *DisplayList
	renderer *Renderer
	input    InputSource
	update   UpdateFunc
	state    InputState
	ticks    uint64
	logger   *log.Logger
	stopped  atomic.Bool

	painter     *EbitenPainter
	screenshots []string
}

// NewLoop creates a loop for cfg. update may be nil.
func NewLoop(cfg Config, update UpdateFunc) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := NewRenderer(cfg.Width, cfg.Height)
	r.Background = cfg.Background.Color
	r.Debug = cfg.Debug
	return &Loop{
		cfg:      cfg,
		list:     NewDisplayList(cfg.Layers),
		renderer: r,
		update:   update,
	}, nil
}

// SetLogger replaces the diagnostic logger of the loop and its display list.
func (l *Loop) SetLogger(lg *log.Logger) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = lg
	l.list.SetLogger(lg)
}

func (l *Loop) diag() *log.Logger { return loggerOr(l.logger) }

// SetInput replaces the input source. A ScriptedInput without a viewport or
// screenshot hook is bound to this loop's.
func (l *Loop) SetInput(src InputSource) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := src.(*ScriptedInput); ok {
		if s.Width == 0 && s.Height == 0 {
			s.Width, s.Height = l.cfg.Width, l.cfg.Height
		}
		if s.OnScreenshot == nil {
			s.OnScreenshot = l.Screenshot
		}
	}
	l.input = src
}

// SetUpdate replaces the update function.
func (l *Loop) SetUpdate(fn UpdateFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.update = fn
}

// Config returns the startup configuration.
func (l *Loop) Config() Config { return l.cfg }

// List returns the display list. Outside an update or Do callback it must
// not be touched while the loop is running.
func (l *Loop) List() *DisplayList { return l.list }

// Renderer returns the loop's renderer.
func (l *Loop) Renderer() *Renderer { return l.renderer }

// Ticks returns how many ticks have completed.
func (l *Loop) Ticks() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticks
}

// Tick runs one update step. In order, with the model locked:
//
//  1. clips queued with RemoveNextTime are removed;
//  2. the input source is sampled into this tick's snapshot;
//  3. the active track of every displayed clip advances one step (not on
//     the very first tick, so initial frames are shown);
//  4. the update function runs;
//  5. OnFrame is notified.
func (l *Loop) Tick() {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	index := l.ticks

	l.list.FlushRemovals()
	l.state = Snapshot(l.input)
	if index > 0 {
		l.list.Each(func(_ int, c *Clip) { c.Update() })
	}
	if l.update != nil {
		l.update(l.tick(index))
	}
	l.ticks++
	if l.OnFrame != nil {
		l.OnFrame(index)
	}

	if l.cfg.Debug {
		if took := time.Since(start); took > l.cfg.TickPeriod() {
			debugTickSlow(l.diag(), index, took, l.cfg.TickPeriod())
		}
	}
}

func (l *Loop) tick(index uint64) *Tick {
	return &Tick{
		Index:    index,
		DT:       float32(l.cfg.TickMS) / 1000,
		Input:    &l.state,
		List:     l.list,
		Renderer: l.renderer,
	}
}

// Do runs fn with the model locked, for event callbacks that arrive outside
// the tick (for example from another goroutine). The Tick passed to fn
// carries the most recent input snapshot and the index of the next tick.
func (l *Loop) Do(fn func(t *Tick)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.tick(l.ticks))
}

// Render paints the current frame with the model locked. Clips queued for
// removal during the last tick are drawn one final time and then removed.
func (l *Loop) Render(p Painter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.renderer.Render(l.list, p)
}

// Stop makes Run return and ends an Ebitengine session at its next Update.
// It does not take the model lock, so it may be called from an update,
// OnFrame or Do callback.
func (l *Loop) Stop() { l.stopped.Store(true) }

// Run is the headless host: it ticks on a time.Ticker at the configured
// period and renders to p after every tick (p may be nil). A tick that runs
// long delays the next one; missed periods are not caught up. Run returns
// ctx.Err() once ctx is done, or nil after Stop.
func (l *Loop) Run(ctx context.Context, p Painter) error {
	ticker := time.NewTicker(l.cfg.TickPeriod())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if l.stopped.Load() {
			return nil
		}
		l.Tick()
		if p != nil {
			l.Render(p)
		}
	}
}

// Update implements ebiten.Game.
func (l *Loop) Update() error {
	if l.stopped.Load() {
		return ebiten.Termination
	}
	l.Tick()
	return nil
}

// Draw implements ebiten.Game.
func (l *Loop) Draw(screen *ebiten.Image) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.painter == nil || l.painter.Target != screen {
		l.painter = NewEbitenPainter(screen)
	}
	l.renderer.Render(l.list, l.painter)
	if len(l.screenshots) > 0 {
		l.flushScreenshots(screen)
	}
	if l.cfg.ShowFPS {
		drawFPS(screen)
	}
}

// Layout implements ebiten.Game. The logical screen is the configured
// viewport regardless of window size.
func (l *Loop) Layout(_, _ int) (int, int) {
	return l.cfg.Width, l.cfg.Height
}

// RunGame hosts l in an Ebitengine window: it sizes and titles the window,
// sets the tick rate from the configured period, and reads real keyboard and
// mouse input unless another source was set. It blocks until the window is
// closed or Stop is called.
func RunGame(l *Loop) error {
	cfg := l.cfg
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetTPS(cfg.TPS())

	l.mu.Lock()
	if l.input == nil {
		l.input = NewEbitenInput(cfg.Width, cfg.Height)
	}
	l.mu.Unlock()

	if err := ebiten.RunGame(l); err != nil {
		return fmt.Errorf("reel: run game: %w", err)
	}
	return nil
}
