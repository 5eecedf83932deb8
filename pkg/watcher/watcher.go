package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultPollInterval is used when fsnotify is unavailable.
const DefaultPollInterval = 2 * time.Second

// Options configures a Watcher
type Options struct {
	Debounce     time.Duration
	PollInterval time.Duration
	// ForcePoll skips fsnotify entirely (network filesystems, tests)
	ForcePoll bool
	Logger    *zap.Logger
}

// Watcher calls OnChange after any of the watched files is written, created,
// renamed or removed. It watches the parent directories rather than the files
// so that editors replacing a file via rename are still seen.
type Watcher struct {
	paths    map[string]bool
	dirs     []string
	onChange func()
	opts     Options
	logger   *zap.Logger

	debouncer *Debouncer

	mu      sync.Mutex
	running bool
	polling bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a watcher for the given files. Files that do not exist yet are
// allowed; their directories must exist.
func New(files []string, onChange func(), opts Options) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("watcher: no files to watch")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Watcher{
		paths:    make(map[string]bool, len(files)),
		onChange: onChange,
		opts:     opts,
		logger:   logger,
	}
	seenDir := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		w.paths[abs] = true
		dir := filepath.Dir(abs)
		if !seenDir[dir] {
			seenDir[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	w.debouncer = NewDebouncer(opts.Debounce, w.fire)
	return w, nil
}

func (w *Watcher) fire() {
	w.logger.Debug("source changed, reloading")
	if w.onChange != nil {
		w.onChange()
	}
}

// Start begins watching in a background goroutine. It is a no-op when
// already running.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	var fsw *fsnotify.Watcher
	if !w.opts.ForcePoll {
		var err error
		fsw, err = fsnotify.NewWatcher()
		if err != nil {
			w.logger.Warn("fsnotify unavailable, falling back to polling", zap.Error(err))
			fsw = nil
		} else {
			for _, dir := range w.dirs {
				if err := fsw.Add(dir); err != nil {
					w.logger.Warn("watch failed, falling back to polling", zap.String("dir", dir), zap.Error(err))
					fsw.Close()
					fsw = nil
					break
				}
			}
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.running = true
	w.polling = fsw == nil

	if fsw != nil {
		go w.runNotify(ctx, fsw)
	} else {
		go w.runPoll(ctx)
	}
	return nil
}

// Stop stops watching, waits for the loop to exit and drops any pending
// reload.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	cancel()
	<-done
	w.debouncer.Cancel()
}

// Polling reports whether the watcher fell back to polling.
func (w *Watcher) Polling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polling
}

func (w *Watcher) runNotify(ctx context.Context, fsw *fsnotify.Watcher) {
	defer close(w.done)
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.paths[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				w.logger.Debug("file event", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				w.debouncer.Trigger()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

type fileStamp struct {
	exists  bool
	modTime time.Time
	size    int64
}

func (w *Watcher) stamps() map[string]fileStamp {
	out := make(map[string]fileStamp, len(w.paths))
	for p := range w.paths {
		info, err := os.Stat(p)
		if err != nil {
			out[p] = fileStamp{}
			continue
		}
		out[p] = fileStamp{exists: true, modTime: info.ModTime(), size: info.Size()}
	}
	return out
}

func (w *Watcher) runPoll(ctx context.Context) {
	defer close(w.done)

	last := w.stamps()
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := w.stamps()
			for p, s := range cur {
				if s != last[p] {
					w.logger.Debug("file changed (poll)", zap.String("path", p))
					w.debouncer.Trigger()
					break
				}
			}
			last = cur
		}
	}
}
