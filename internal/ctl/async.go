package ctl

import (
	"context"
	"sync"
	"time"

	"github.com/npillmayer/btreekit/btree"
	"github.com/npillmayer/btreekit/observe"
	"github.com/pingcap/errors"
)

const (
	asyncCapacity     = 1024
	asyncDrainTimeout = 2 * time.Second
)

// asyncEvents collects the events of a tree through a subscription to a
// broadcaster. Events the broadcaster cannot hand over are dropped and
// counted.
type asyncEvents[K any] struct {
	broadcast *observe.Broadcaster[K]
	cancel    context.CancelFunc
	emitted   int // touched by the tree's goroutine only
	finished  chan struct{}
	mu        sync.Mutex
	received  []btree.Event[K]
}

func newAsyncEvents[K any]() (*asyncEvents[K], error) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &asyncEvents[K]{
		broadcast: observe.NewBroadcaster[K](ctx),
		cancel:    cancel,
		finished:  make(chan struct{}),
	}
	sub, err := a.broadcast.Subscribe(ctx, asyncCapacity)
	if err != nil {
		a.broadcast.Close()
		cancel()
		return nil, errors.WithStack(err)
	}
	go func() {
		defer close(a.finished)
		for e := range sub {
			a.mu.Lock()
			a.received = append(a.received, e)
			a.mu.Unlock()
		}
	}()
	return a, nil
}

// Notify is part of interface btree.Observer.
func (a *asyncEvents[K]) Notify(e btree.Event[K]) {
	a.emitted++
	a.broadcast.Notify(e)
}

func (a *asyncEvents[K]) pending() bool {
	a.mu.Lock()
	n := len(a.received)
	a.mu.Unlock()
	return uint64(n)+a.broadcast.Dropped() < uint64(a.emitted)
}

// drain waits until every published event has arrived, or timeout has
// passed, and ends the subscription. It returns the events received and
// the number of events dropped.
func (a *asyncEvents[K]) drain(timeout time.Duration) ([]btree.Event[K], uint64) {
	deadline := time.Now().Add(timeout)
	for a.pending() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	a.broadcast.Close()
	a.cancel()
	<-a.finished
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.received, a.broadcast.Dropped()
}
