// Package app wires the editor to its file, its configuration and the
// terminal, and runs the event loop.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/dshills/modal/internal/config"
	"github.com/dshills/modal/internal/editor"
	"github.com/dshills/modal/internal/engine/text"
	"github.com/dshills/modal/internal/input"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/register"
)

// Application owns one editing session.
type Application struct {
	opts Options

	cfg    *config.Config
	logger *Logger
	log    *slog.Logger

	doc    *Document
	editor *editor.Editor

	// renderer draws while Run owns a screen; nil otherwise.
	renderer editor.Renderer

	running atomic.Bool
}

// Options configures the application. Non-empty fields override the
// config file.
type Options struct {
	// ConfigPath is the config file. Empty looks in the user config
	// directory.
	ConfigPath string

	// File is the file to edit. Empty starts a scratch buffer.
	File string

	ReadOnly bool

	LogLevel  string
	LogFile   string
	MacroFile string
}

// New loads the configuration and the file and builds the editor.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		if app.logger != nil {
			_ = app.logger.Close()
		}
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	path := app.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if app.opts.LogLevel != "" {
		cfg.LogLevel = app.opts.LogLevel
	}
	if app.opts.LogFile != "" {
		cfg.LogFile = app.opts.LogFile
	}
	if app.opts.MacroFile != "" {
		cfg.MacroFile = app.opts.MacroFile
	}
	app.cfg = cfg

	app.logger, err = NewLogger(LoggerConfig{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.log = app.logger.Component("app")
	app.log.Info("config loaded", "path", cfg.Path)

	app.doc, err = OpenDocument(app.opts.File, app.opts.ReadOnly, text.WithUndoTimeout(cfg.UndoTimeoutDuration()))
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}

	opts := []editor.Option{
		editor.WithLogger(app.logger.Component("editor")),
		editor.WithKeyTimeout(cfg.KeyTimeoutDuration()),
		editor.WithShiftWidth(cfg.ShiftWidth),
		editor.WithExecutor(app),
		editor.WithRenderer(editor.RendererFunc(app.render)),
		editor.WithMappings(cfg.Path, cfg.KeyMappings()),
	}
	if cfg.Clipboard {
		if register.SystemClipboardAvailable() {
			opts = append(opts, editor.WithClipboard(register.SystemClipboard{}))
		} else {
			app.log.Warn("system clipboard unavailable")
		}
	}
	app.editor, err = editor.New(app.doc.Store, opts...)
	if err != nil {
		return &InitError{Component: "editor", Err: err}
	}

	app.loadMacros()
	return nil
}

// Config returns the settings in effect.
func (app *Application) Config() *config.Config { return app.cfg }

// Editor returns the editor.
func (app *Application) Editor() *editor.Editor { return app.editor }

// Document returns the document being edited.
func (app *Application) Document() *Document { return app.doc }

// Logger returns the logger.
func (app *Application) Logger() *Logger { return app.logger }

func (app *Application) render(v editor.View) {
	if app.renderer != nil {
		app.renderer.Render(v)
	}
}

// RunKeys feeds keys to the editor without a terminal. Quitting is not an
// error.
func (app *Application) RunKeys(ctx context.Context, keys key.Sequence) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	err := app.editor.Run(ctx, input.NewSliceSource(keys))
	if errors.Is(err, editor.ErrQuit) {
		return nil
	}
	return err
}

// Shutdown saves the macros and closes the log.
func (app *Application) Shutdown() error {
	err := app.saveMacros()
	return errors.Join(err, app.logger.Close())
}
