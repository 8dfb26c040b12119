package app

import (
	"time"

	"github.com/dshills/modal/internal/input/macro"
)

func (app *Application) loadMacros() {
	path := app.cfg.MacroFile
	if path == "" {
		return
	}
	snap, err := macro.Load(path)
	if err != nil {
		app.log.Warn("macros not loaded", "path", path, "error", err)
		return
	}
	if err := snap.Apply(app.editor.Registers(), app.editor.Player()); err != nil {
		app.log.Warn("macros not loaded", "path", path, "error", err)
		return
	}
	app.log.Debug("macros loaded", "path", path, "count", len(snap.Macros))
}

func (app *Application) saveMacros() error {
	path := app.cfg.MacroFile
	if path == "" {
		return nil
	}
	snap := macro.Capture(app.editor.Registers(), app.editor.Player(), time.Now())
	if err := macro.Save(path, snap); err != nil {
		return &FileError{Op: "save macros", Path: path, Err: err}
	}
	app.log.Debug("macros saved", "path", path, "count", len(snap.Macros))
	return nil
}
