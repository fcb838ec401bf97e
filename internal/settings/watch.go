package settings

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn with freshly loaded settings whenever the settings file is
// written, until ctx is cancelled. The parent directory is watched so that
// editors that replace the file atomically are still seen.
func (f *FileStore) Watch(ctx context.Context, fn func(Settings, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(f.path)); err != nil {
		w.Close()
		return err
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(f.path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				fn(f.Load())
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				fn(Settings{}, err)
			}
		}
	}()
	return nil
}
