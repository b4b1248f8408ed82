package main

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"gitlab.com/tozd/go/errors"
)

type fileChangedMsg struct {
	path string
}

type watchErrMsg struct {
	err error
}

// fileWatcher reports writes to one file. It watches the parent directory so
// editors that save by renaming a temp file over the original are seen too.
type fileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	events  chan tea.Msg
	done    chan struct{}
}

func newFileWatcher(path string) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Errorf("creating file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, errors.Errorf("watching %s: %w", path, err)
	}

	fw := &fileWatcher{
		path:    filepath.Clean(path),
		watcher: w,
		events:  make(chan tea.Msg, 1),
		done:    make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

func (fw *fileWatcher) loop() {
	defer close(fw.events)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(event) {
				continue
			}
			// Coalesce bursts: one pending notification is enough since the
			// receiver rereads the whole file.
			select {
			case fw.events <- fileChangedMsg{path: fw.path}:
			default:
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case fw.events <- watchErrMsg{err: err}:
			case <-fw.done:
				return
			}
		case <-fw.done:
			return
		}
	}
}

func (fw *fileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// next waits for the following notification.
func (fw *fileWatcher) next() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-fw.events
		if !ok {
			return nil
		}
		return msg
	}
}

func (fw *fileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}
