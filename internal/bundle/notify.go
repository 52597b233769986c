package bundle

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Notifier forwards fsnotify events for a set of directories.
// Directories are watched non-recursively.
type Notifier struct {
	fsw    *fsnotify.Watcher
	events chan Event
	errors chan error
	done   chan struct{}
	once   sync.Once
}

// NewNotifier starts an fsnotify watcher with no directories
func NewNotifier() (*Notifier, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	n := &Notifier{
		fsw:    fsw,
		events: make(chan Event),
		errors: make(chan error),
		done:   make(chan struct{}),
	}
	go n.forward()
	return n, nil
}

// Add starts watching dir
func (n *Notifier) Add(dir string) error {
	if err := n.fsw.Add(dir); err != nil {
		return fileError("watch", dir, err)
	}
	return nil
}

// Events delivers change notifications
func (n *Notifier) Events() <-chan Event {
	return n.events
}

// Errors delivers watcher errors
func (n *Notifier) Errors() <-chan error {
	return n.errors
}

// Close stops the watcher. Both channels are closed afterwards.
func (n *Notifier) Close() error {
	var err error
	n.once.Do(func() {
		close(n.done)
		err = n.fsw.Close()
	})
	return err
}

func (n *Notifier) forward() {
	defer close(n.events)
	defer close(n.errors)

	for {
		select {
		case <-n.done:
			return

		case ev, ok := <-n.fsw.Events:
			if !ok {
				return
			}
			select {
			case n.events <- Event{Name: ev.Name, Op: convertOp(ev.Op)}:
			case <-n.done:
				return
			}

		case err, ok := <-n.fsw.Errors:
			if !ok {
				return
			}
			select {
			case n.errors <- err:
			case <-n.done:
				return
			}
		}
	}
}

// convertOp maps fsnotify operations onto EventOp
func convertOp(op fsnotify.Op) EventOp {
	var out EventOp
	if op.Has(fsnotify.Create) {
		out |= OpCreate
	}
	if op.Has(fsnotify.Write) {
		out |= OpWrite
	}
	if op.Has(fsnotify.Remove) {
		out |= OpRemove
	}
	if op.Has(fsnotify.Rename) {
		out |= OpRename
	}
	if op.Has(fsnotify.Chmod) {
		out |= OpChmod
	}
	return out
}
