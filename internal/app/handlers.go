package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/modal/internal/editor"
)

var errArgumentRequired = errors.New("E471: Argument required")

// Execute implements editor.CommandExecutor for the commands that touch
// the file: :w, :sav and :f.
func (app *Application) Execute(e *editor.Editor, cmd editor.ExCommand) error {
	switch cmd.Name {
	case "write":
		return app.write(e, strings.TrimSpace(cmd.Args))
	case "sav", "saveas":
		path := strings.TrimSpace(cmd.Args)
		if path == "" {
			return errArgumentRequired
		}
		return app.write(e, path)
	case "f", "file":
		e.SetMessage(app.fileInfo())
		return nil
	}
	return editor.ErrUnknownCommand
}

func (app *Application) write(e *editor.Editor, path string) error {
	var (
		n   int
		err error
	)
	if path == "" {
		n, err = app.doc.Save()
	} else {
		n, err = app.doc.SaveAs(path)
	}
	if err != nil {
		app.log.Warn("write failed", "path", app.doc.Path, "error", err)
		return err
	}
	lines := app.doc.Store.LineCount()
	app.log.Info("wrote file", "path", app.doc.Path, "bytes", n)
	e.SetMessage(fmt.Sprintf("%q %dL, %dB written", app.doc.Name, lines, n))
	return nil
}

func (app *Application) fileInfo() string {
	var flags []string
	if app.doc.IsModified() {
		flags = append(flags, "[Modified]")
	}
	if app.doc.ReadOnly {
		flags = append(flags, "[readonly]")
	}
	info := fmt.Sprintf("%q", app.doc.Name)
	if len(flags) > 0 {
		info += " " + strings.Join(flags, " ")
	}
	return fmt.Sprintf("%s %d lines", info, app.doc.Store.LineCount())
}
