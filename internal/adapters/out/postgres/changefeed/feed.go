// Package changefeed turns PostgreSQL NOTIFY messages published by the row triggers
// into ports.Change values.
package changefeed

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"discount/internal/adapters/out/postgres"
	"discount/internal/core/ports"

	faster "github.com/go-faster/errors"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	minReconnect = 100 * time.Millisecond
	maxReconnect = 30 * time.Second
	pingInterval = 90 * time.Second
	bufferSize   = 64
)

var _ ports.ChangeFeed = (*Feed)(nil)

// Feed shares one LISTEN connection among all subscribers. The connection is opened
// by the first subscriber and closed when the last one leaves.
type Feed struct {
	dsn    string
	logger *zap.Logger

	mu       sync.Mutex
	listener *pq.Listener
	stop     context.CancelFunc
	subs     map[*subscriber]struct{}
}

// subscriber owns a buffered channel. A subscriber too slow to take a change is
// sent a ChangeResync as soon as it has room again.
type subscriber struct {
	out    chan ports.Change
	missed bool
}

func NewFeed(dsn string, logger *zap.Logger) *Feed {
	return &Feed{
		dsn:    dsn,
		logger: logger.With(zap.String("component", "changefeed")),
		subs:   make(map[*subscriber]struct{}),
	}
}

// Subscribe starts listening. The returned channel is closed once ctx is done.
// A reconnect is reported as a ChangeResync since notifications sent meanwhile are lost.
func (f *Feed) Subscribe(ctx context.Context) (<-chan ports.Change, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listener == nil {
		if err := f.start(); err != nil {
			return nil, err
		}
	}

	sub := &subscriber{out: make(chan ports.Change, bufferSize)}
	f.subs[sub] = struct{}{}
	go func() {
		<-ctx.Done()
		f.unsubscribe(sub)
	}()
	return sub.out, nil
}

// Subscribers reports how many subscriptions are open.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// start must be called with f.mu held.
func (f *Feed) start() error {
	listener := pq.NewListener(f.dsn, minReconnect, maxReconnect, f.onEvent)
	if err := listener.Listen(postgres.ChangeChannel); err != nil {
		_ = listener.Close()
		return faster.Wrap(err, "listen")
	}

	ctx, stop := context.WithCancel(context.Background())
	f.listener, f.stop = listener, stop
	go f.pump(ctx, listener)
	return nil
}

func (f *Feed) unsubscribe(sub *subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.subs, sub)
	close(sub.out)
	if len(f.subs) == 0 && f.stop != nil {
		f.stop()
		f.listener, f.stop = nil, nil
	}
}

func (f *Feed) pump(ctx context.Context, listener *pq.Listener) {
	defer func() {
		if err := listener.Close(); err != nil {
			f.logger.Warn("close listener", zap.Error(err))
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := listener.Ping(); err != nil {
				f.logger.Warn("ping listener", zap.Error(err))
			}
		case n, ok := <-listener.Notify:
			if !ok {
				return
			}
			if change, ok := f.decode(n); ok {
				f.broadcast(listener, change)
			}
		}
	}
}

// broadcast never blocks on a subscriber. Changes from a listener that has been
// replaced are dropped.
func (f *Feed) broadcast(from *pq.Listener, change ports.Change) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listener != from {
		return
	}
	for sub := range f.subs {
		if sub.missed {
			if !trySend(sub.out, ports.Change{Op: ports.ChangeResync}) {
				continue
			}
			sub.missed = false
		}
		if !trySend(sub.out, change) {
			sub.missed = true
		}
	}
}

func trySend(out chan<- ports.Change, change ports.Change) bool {
	select {
	case out <- change:
		return true
	default:
		return false
	}
}

// decode returns false for payloads that cannot be parsed. A nil notification is
// what pq delivers after re-establishing the connection.
func (f *Feed) decode(n *pq.Notification) (ports.Change, bool) {
	if n == nil {
		return ports.Change{Op: ports.ChangeResync}, true
	}
	change, err := Decode(n.Extra)
	if err != nil {
		f.logger.Warn("drop malformed notification", zap.String("payload", n.Extra), zap.Error(err))
		return ports.Change{}, false
	}
	return change, true
}

func (f *Feed) onEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		f.logger.Debug("listener connected")
	case pq.ListenerEventDisconnected:
		f.logger.Warn("listener disconnected", zap.Error(err))
	case pq.ListenerEventReconnected:
		f.logger.Info("listener reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		f.logger.Warn("listener connection attempt failed", zap.Error(err))
	}
}

// Decode parses the JSON payload built by the notify trigger.
func Decode(payload string) (ports.Change, error) {
	var change ports.Change
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		return ports.Change{}, faster.Wrap(err, "decode change")
	}
	switch change.Op {
	case ports.ChangeInsert, ports.ChangeUpdate, ports.ChangeDelete:
	default:
		return ports.Change{}, faster.Errorf("unknown change op %q", change.Op)
	}
	if change.Table == "" {
		return ports.Change{}, faster.New("change without table")
	}
	return change, nil
}
