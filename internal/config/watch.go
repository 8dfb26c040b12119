package config

import (
	"context"
	"time"

	"github.com/dshills/modal/internal/config/watcher"
)

// Reload is the result of reloading a changed config file. Err is set when
// the new file did not load; the previous config stays in effect.
type Reload struct {
	Config *Config
	Err    error
}

// Watch reloads the file at path whenever it changes and delivers each
// result on the returned channel. The channel is closed once ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration) (<-chan Reload, error) {
	w := watcher.New(watcher.WithDebounce(debounce))
	if err := w.Watch(path); err != nil {
		return nil, err
	}
	out := make(chan Reload, 1)
	send := func(r Reload) {
		select {
		case out <- r:
		case <-ctx.Done():
		}
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		c, err := Load(path)
		send(Reload{Config: c, Err: err})
	})
	w.OnError(func(err error) {
		send(Reload{Err: err})
	})
	if err := w.Start(); err != nil {
		return nil, err
	}
	go func() {
		<-ctx.Done()
		w.Stop()
		close(out)
	}()
	return out, nil
}
