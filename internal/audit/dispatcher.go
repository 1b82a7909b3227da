package audit

import (
	"log/slog"
	"sync"
)

const queueSize = 100

type Event struct {
	RestaurantID string
	UserID       *string
	Action       string
	Entity       string
	EntityID     *string
	Metadata     any
}

// Actions recorded by the owner API.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionUpload = "upload"
)

// Writer persists one event. *Logger is the gorm implementation.
type Writer interface {
	Log(ev Event) error
}

type Dispatcher struct {
	logger Writer
	log    *slog.Logger
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

func NewDispatcher(logger Writer, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			d.log.Error("audit write failed",
				slog.String("restaurant_id", ev.RestaurantID),
				slog.String("action", ev.Action),
				slog.String("entity", ev.Entity),
				slog.Any("error", err),
			)
		}
	}
}

// Dispatch never blocks the request; a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event",
			slog.String("restaurant_id", ev.RestaurantID),
			slog.String("action", ev.Action),
		)
	}
}

// Close drains queued events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	<-d.done
}
