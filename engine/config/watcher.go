package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/hickb/hdcycles/engine/core"
)

/**
 * @brief Watches a configuration file and reloads it on change, for
 * interactive sessions where render settings are tweaked mid-flight.
 */
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	done     chan struct{}
}

// Watch starts watching path and invokes onChange with the reloaded
// configuration after every successful parse. Call Close to stop.
func Watch(path string, onChange func(Config)) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory; editors replace files on save which drops
	// per-file watches.
	if err := fsWatch.Add(filepath.Dir(path)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}

	go w.run(onChange)

	return w, nil
}

func (w *Watcher) run(onChange func(Config)) {
	for {
		select {
		case event, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				core.LogWarn("config reload failed, keeping previous settings: %s", err.Error())
				continue
			}
			core.LogInfo("config reloaded from %s", w.path)
			onChange(cfg)
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("config watcher: %s", err.Error())
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fsnotify.Close()
}
