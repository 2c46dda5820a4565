package rcparams

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/gplot"
)

// WatchDebounce is how long Watch waits after the last change before
// reloading.
const WatchDebounce = 200 * time.Millisecond

// Watch reloads path into p whenever it changes and then calls onReload.
// Reload errors are logged and leave p unchanged. Watch blocks until ctx
// is done.
func (p *Params) Watch(ctx context.Context, path string, onReload func(*Params)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("rcparams: watch: %w", err)
	}
	defer w.Close()

	// Watch the directory so atomic renames by editors are seen.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("rcparams: watch %s: %w", path, err)
	}
	base := filepath.Base(path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(WatchDebounce)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			if err := p.LoadFile(path); err != nil {
				gplot.Logger().Warn("rcparams: reload failed", "path", path, "err", err)
				continue
			}
			if onReload != nil {
				onReload(p)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			gplot.Logger().Warn("rcparams: watcher error", "err", err)
		}
	}
}
