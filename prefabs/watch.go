package prefabs

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleTime is how long a directory must stay quiet before its pending
// changes are reported. Editors save in bursts of create, write and rename.
const settleTime = 100 * time.Millisecond

// Watcher reports edited level files and reaction scripts so the game can
// restart the level with them.
type Watcher struct {
	fs      *fsnotify.Watcher
	changes chan []string
	errs    chan error
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once

	// lastErr is owned by run.
	lastErr string
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("prefabs: new watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("prefabs: watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fs:      fw,
		changes: make(chan []string, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		<-w.stopped
	})
	return err
}

// Poll returns the files changed since the last call, sorted, without
// blocking.
func (w *Watcher) Poll() ([]string, bool) {
	select {
	case paths := <-w.changes:
		return paths, true
	default:
		return nil, false
	}
}

// Err returns a watch error, if one happened since the last call. An error
// repeating the previous one is not reported again.
func (w *Watcher) Err() error {
	select {
	case err := <-w.errs:
		return err
	default:
		return nil
	}
}

func (w *Watcher) run() {
	defer close(w.stopped)

	pending := map[string]bool{}
	settle := time.NewTimer(settleTime)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if !Watched(ev.Name) {
				continue
			}
			pending[ev.Name] = true
			settle.Reset(settleTime)
		case <-settle.C:
			w.publish(pending)
			pending = map[string]bool{}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) report(err error) {
	if err == nil || err.Error() == w.lastErr {
		return
	}
	w.lastErr = err.Error()
	select {
	case w.errs <- err:
	default:
	}
}

// publish hands pending to Poll, merging with a batch nobody has picked up.
func (w *Watcher) publish(pending map[string]bool) {
	if len(pending) == 0 {
		return
	}
	select {
	case older := <-w.changes:
		for _, p := range older {
			pending[p] = true
		}
	default:
	}

	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	w.changes <- paths
}

// Watched reports whether edits to path should restart the level.
func Watched(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".tengo":
		return true
	default:
		return false
	}
}
