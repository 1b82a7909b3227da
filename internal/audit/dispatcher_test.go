package audit

import (
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memoryWriter struct {
	mu     sync.Mutex
	events []Event
	err    error
	block  chan struct{}
}

func (w *memoryWriter) Log(ev Event) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
	return w.err
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	w := &memoryWriter{}
	d := NewDispatcher(w, slog.New(slog.DiscardHandler))

	for range 5 {
		d.Dispatch(Event{RestaurantID: "r1", Action: ActionCreate, Entity: "menu"})
	}
	d.Close()

	assert.Len(t, w.events, 5)
	assert.Equal(t, "r1", w.events[0].RestaurantID)
}

func TestDispatcher_WriteErrorsDoNotStopWorker(t *testing.T) {
	w := &memoryWriter{err: errors.New("db down")}
	d := NewDispatcher(w, slog.New(slog.DiscardHandler))

	d.Dispatch(Event{Action: ActionDelete})
	d.Dispatch(Event{Action: ActionUpdate})
	d.Close()

	assert.Len(t, w.events, 2)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	w := &memoryWriter{block: make(chan struct{})}
	d := NewDispatcher(w, slog.New(slog.DiscardHandler))

	// one event is held by the blocked worker, the rest fill the queue
	for range queueSize + 10 {
		d.Dispatch(Event{Action: ActionCreate})
	}
	close(w.block)
	d.Close()

	assert.LessOrEqual(t, len(w.events), queueSize+1)
	assert.GreaterOrEqual(t, len(w.events), queueSize)
}
