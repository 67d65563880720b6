package config

import (
	"os"
	"sync"
	"time"
)

// fileState is what a poll remembers about one table file.
type fileState struct {
	mtime time.Time
	size  int64
}

// FileWatcher polls the balance-table files and reports each change to a
// callback. Polling survives editors that replace the file instead of
// writing in place, where inotify-style watches lose the inode.
type FileWatcher struct {
	paths    []string
	interval time.Duration
	onChange func(path string)

	stopOnce sync.Once
	stopCh   chan struct{}
	states   map[string]fileState
}

// NewFileWatcher creates a watcher over the given table files. Nothing
// runs until Start.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		paths:    paths,
		interval: interval,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		states:   make(map[string]fileState),
	}
}

// Start launches the polling goroutine. The first scan only records the
// current state, so files present at startup do not fire the callback.
func (w *FileWatcher) Start() {
	w.scan(false)
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scan(true)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop halts polling. Safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// scan stats every watched file and fires the callback for each one whose
// mtime or size moved since the previous scan. A file that disappears is
// forgotten and treated as new when it comes back.
func (w *FileWatcher) scan(notify bool) {
	for _, p := range w.paths {
		fi, err := os.Stat(p)
		if err != nil {
			delete(w.states, p)
			continue
		}
		cur := fileState{mtime: fi.ModTime(), size: fi.Size()}
		prev, known := w.states[p]
		w.states[p] = cur
		if !known {
			continue
		}
		if cur.mtime.After(prev.mtime) || cur.size != prev.size {
			if notify && w.onChange != nil {
				w.onChange(p)
			}
		}
	}
}
