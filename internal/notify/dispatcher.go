package notify

import (
	"sync"
	"time"

	"parq/pkg/logger"
	"parq/pkg/model"
)

// Dispatcher maps a client key (E.164 phone number) to at most one live
// outbound channel. Delivery is best-effort: no registration is a
// silent no-op, a full channel is dropped after a bounded wait, and no
// failure ever propagates to the operation that produced the
// notification.
type Dispatcher struct {
	mu      sync.RWMutex
	subs    map[string]chan model.Notification
	buffer  int
	timeout time.Duration
	log     *logger.Logger
}

func NewDispatcher(buffer int, timeout time.Duration, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		subs:    make(map[string]chan model.Notification),
		buffer:  buffer,
		timeout: timeout,
		log:     log,
	}
}

// Register creates a fresh channel for the key, replacing (and closing)
// any previous registration. One live channel per client identity.
func (d *Dispatcher) Register(clientKey string) <-chan model.Notification {
	ch := make(chan model.Notification, d.buffer)

	d.mu.Lock()
	if old, ok := d.subs[clientKey]; ok {
		close(old)
	}
	d.subs[clientKey] = ch
	d.mu.Unlock()

	d.log.Info("Notification listener registered", "client_key", clientKey)
	return ch
}

// Unregister removes the registration, but only if ch is still the
// current channel for the key. A listener that was already replaced by
// a newer registration must not tear down its successor.
func (d *Dispatcher) Unregister(clientKey string, ch <-chan model.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, ok := d.subs[clientKey]
	if !ok || (<-chan model.Notification)(current) != ch {
		return
	}

	close(current)
	delete(d.subs, clientKey)
	d.log.Info("Notification listener unregistered", "client_key", clientKey)
}

// Push delivers n to the client's channel if one is registered. It
// blocks at most for the configured timeout; an undeliverable
// notification is logged and dropped. Holding the read lock while
// sending keeps the channel from being closed mid-send.
func (d *Dispatcher) Push(clientKey string, n model.Notification) {
	if n.At.IsZero() {
		n.At = time.Now()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	ch, ok := d.subs[clientKey]
	if !ok {
		return
	}

	select {
	case ch <- n:
	case <-time.After(d.timeout):
		d.log.Warn("Notification dropped, listener channel full",
			"client_key", clientKey,
			"title", n.Title,
		)
	}
}

// Close tears down every registration; used on shutdown.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, ch := range d.subs {
		close(ch)
		delete(d.subs, key)
	}
}
