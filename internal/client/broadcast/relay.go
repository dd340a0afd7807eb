package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/vibecart/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// SignalFileName is the file peers watch inside the shared data directory.
const SignalFileName = "broadcast.json"

// FileRelay is a Channel that also mirrors published events into a signal
// file and feeds events written by other processes into the local Hub.
type FileRelay struct {
	hub    *Hub
	dir    string
	sender string
	log    logging.Logger

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	lastSeen string
}

// NewFileRelay creates a relay over dir. Call Start to begin watching.
func NewFileRelay(dir string, hub *Hub, log logging.Logger) *FileRelay {
	return &FileRelay{
		hub:    hub,
		dir:    dir,
		sender: uuid.NewString(),
		log:    log.With("component", "broadcast"),
	}
}

// Sender is this process's id, stamped on every event it publishes.
func (r *FileRelay) Sender() string { return r.sender }

func (r *FileRelay) signalPath() string { return filepath.Join(r.dir, SignalFileName) }

func (r *FileRelay) Subscribe(kind Kind, h Handler) func() {
	return r.hub.Subscribe(kind, h)
}

// Publish delivers ev locally, then writes it to the signal file. A failed
// write is returned but local delivery has already happened.
func (r *FileRelay) Publish(ctx context.Context, ev Event) error {
	ev.Sender = r.sender
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	_ = r.hub.Publish(ctx, ev)

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", r.dir, err)
	}

	// Write-then-rename so watchers never read a half-written file.
	tmp, err := os.CreateTemp(r.dir, "."+SignalFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create signal file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write signal file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close signal file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.signalPath()); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace signal file: %w", err)
	}
	return nil
}

// Start begins watching the data directory. It is a no-op when already running.
func (r *FileRelay) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil
	}

	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", r.dir, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(r.dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", r.dir, err)
	}

	r.watcher = w
	r.running = true
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	go r.run(ctx, w, r.stopCh, r.doneCh)

	r.log.Debug(ctx, "watching for peer events", "dir", r.dir)
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (r *FileRelay) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	stopCh, doneCh, w := r.stopCh, r.doneCh, r.watcher
	r.mu.Unlock()

	close(stopCh)
	<-doneCh
	_ = w.Close()
}

func (r *FileRelay) run(ctx context.Context, w *fsnotify.Watcher, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case fe, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(fe.Name) != SignalFileName {
				continue
			}
			if !fe.Has(fsnotify.Create) && !fe.Has(fsnotify.Write) {
				continue
			}
			r.deliverFromFile(ctx)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			r.log.Warn(ctx, "watcher error", "error", err)
		}
	}
}

func (r *FileRelay) deliverFromFile(ctx context.Context) {
	data, err := os.ReadFile(r.signalPath())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.log.Warn(ctx, "read signal file", "error", err)
		}
		return
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		r.log.Warn(ctx, "decode signal file", "error", err)
		return
	}
	if ev.Sender == r.sender {
		return
	}

	// One rename can surface as several fsnotify events.
	key := ev.Sender + "|" + ev.At.Format(time.RFC3339Nano)
	r.mu.Lock()
	dup := key == r.lastSeen
	r.lastSeen = key
	r.mu.Unlock()
	if dup {
		return
	}

	ev.Remote = true
	r.log.Debug(ctx, "peer event", "kind", ev.Kind, "sender", ev.Sender)
	_ = r.hub.Publish(ctx, ev)
}
