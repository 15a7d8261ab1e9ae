package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// sceneWatcher reports changes to one file. The directory is watched so
// that editors which save by replacing the file are noticed too.
type sceneWatcher struct {
	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
}

func watchScene(path string, logger *slog.Logger) (*sceneWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("could not watch %s: %w", path, err)
	}
	sw := &sceneWatcher{
		watcher: w,
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go sw.loop(filepath.Clean(path), logger)
	return sw, nil
}

func (sw *sceneWatcher) loop(path string, logger *slog.Logger) {
	defer close(sw.done)
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				// the game loop picks the change up on its next update
				select {
				case sw.changes <- path:
				default:
				}
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("scene watcher", "err", err)
		}
	}
}

func (sw *sceneWatcher) Close() error {
	err := sw.watcher.Close()
	<-sw.done
	return err
}
