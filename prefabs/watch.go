package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// ChangeKind tells a reloader what sort of file changed.
type ChangeKind int

const (
	ChangePrefab ChangeKind = iota
	ChangeScript
)

func (k ChangeKind) String() string {
	if k == ChangeScript {
		return "script"
	}
	return "prefab"
}

// Change is one debounced file change.
type Change struct {
	Path string
	Kind ChangeKind
}

// Name is the base file name, e.g. "character.yaml".
func (c Change) Name() string { return filepath.Base(c.Path) }

// Watcher reports prefab and script files that changed on disk. Changes and
// Errors are closed once the watcher stops.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher and waits for its goroutine. Safe to call twice.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) loop() {
	defer func() {
		close(w.Changes)
		close(w.Errors)
		close(w.done)
	}()

	seen := make(map[string]time.Time)
	for {
		select {
		case <-w.stop:
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			change, relevant := classifyEvent(ev)
			if !relevant {
				continue
			}
			now := time.Now()
			if t, ok := seen[ev.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			seen[ev.Name] = now
			select {
			case w.Changes <- change:
			case <-w.stop:
				return
			}
		}
	}
}

// classifyEvent drops removals and files that are neither prefabs nor scripts.
func classifyEvent(ev fsnotify.Event) (Change, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return Change{}, false
	}
	switch strings.ToLower(filepath.Ext(ev.Name)) {
	case ".yaml", ".yml":
		return Change{Path: ev.Name, Kind: ChangePrefab}, true
	case ".tengo":
		return Change{Path: ev.Name, Kind: ChangeScript}, true
	}
	return Change{}, false
}

// Drain returns every pending change without blocking.
func (w *Watcher) Drain() []Change {
	var out []Change
	for {
		select {
		case c, ok := <-w.Changes:
			if !ok {
				return out
			}
			out = append(out, c)
		default:
			return out
		}
	}
}
