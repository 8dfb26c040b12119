package app

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modal/internal/config"
	"github.com/dshills/modal/internal/editor"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/terminal"
)

const (
	// tickInterval is how often pending key sequences are checked for
	// timeout.
	tickInterval = 50 * time.Millisecond

	reloadDebounce = 100 * time.Millisecond
)

// Run edits on an initialized screen until the user quits, ctx is done or
// the screen is finalized. The caller finalizes the screen.
func (app *Application) Run(ctx context.Context, screen tcell.Screen) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.renderer = terminal.NewScreen(screen)
	defer func() { app.renderer = nil }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var reloads <-chan config.Reload
	if app.cfg.Path != "" {
		r, err := config.Watch(ctx, app.cfg.Path, reloadDebounce)
		if err != nil {
			app.log.Warn("config watch failed", "path", app.cfg.Path, "error", err)
		} else {
			reloads = r
		}
	}

	src := terminal.NewSource(screen)
	src.Start()
	app.render(app.editor.View())
	return app.loop(ctx, screen, src, reloads)
}

func (app *Application) loop(ctx context.Context, screen tcell.Screen, src *terminal.Source, reloads <-chan config.Reload) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		var err error
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-src.Keys():
			if !ok {
				return nil
			}
			err = app.handleKey(ev)
		case <-src.Resizes():
			screen.Sync()
			app.render(app.editor.View())
		case <-ticker.C:
			if err = app.editor.Tick(); err == nil {
				err = app.drainPlayer()
			}
		case r, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			app.applyReload(r)
		}
		if errors.Is(err, editor.ErrQuit) {
			app.log.Info("quit")
			return nil
		}
		if err != nil {
			app.log.Warn("key failed", "error", err)
		}
	}
}

// handleKey processes a typed key, then any macro it started.
func (app *Application) handleKey(ev key.Event) error {
	if err := app.editor.HandleKey(ev); err != nil {
		return err
	}
	return app.drainPlayer()
}

// drainPlayer replays macro keys until playback ends. Playback stops
// early when a replayed key fails.
func (app *Application) drainPlayer() error {
	player := app.editor.Player()
	for player.IsPlaying() {
		ev, ok := player.Next()
		if !ok {
			break
		}
		if err := app.editor.Replay(ev); err != nil {
			return err
		}
	}
	return nil
}

// applyReload swaps in a reloaded config. A config that failed to load
// leaves the current one in effect.
func (app *Application) applyReload(r config.Reload) {
	if r.Err != nil {
		app.log.Warn("config reload failed", "error", r.Err)
		app.editor.SetMessage("config: " + r.Err.Error())
		app.render(app.editor.View())
		return
	}
	c := r.Config
	if err := app.editor.ApplyMappings(c.Path, c.KeyMappings()); err != nil {
		app.log.Warn("mappings rejected", "path", c.Path, "error", err)
		app.editor.SetMessage(err.Error())
	}
	app.editor.SetKeyTimeout(c.KeyTimeoutDuration())
	app.editor.SetShiftWidth(c.ShiftWidth)
	app.logger.SetLevel(ParseLogLevel(c.LogLevel))

	// Settings the running session cannot change stay as they were.
	c.LogFile, c.LogFormat, c.MacroFile = app.cfg.LogFile, app.cfg.LogFormat, app.cfg.MacroFile
	app.cfg = c
	app.log.Info("config reloaded", "path", c.Path)
	app.render(app.editor.View())
}
