package observe

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/guiguan/caster"
	"github.com/npillmayer/btreekit/btree"
)

// Broadcaster is an observer which publishes events to asynchronous
// subscribers.
//
// Publishing never blocks the tree: an event which cannot be handed over
// immediately is dropped and counted (see Dropped). Events reaching a
// subscriber arrive in the order they have been emitted.
type Broadcaster[K any] struct {
	cast    *caster.Caster // broadcaster for asynchronous subscribers
	dropped atomic.Uint64
	done    chan struct{} // closed by Close
	once    sync.Once
}

// NewBroadcaster creates a broadcaster which lives until ctx is done or Close
// is called.
func NewBroadcaster[K any](ctx context.Context) *Broadcaster[K] {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Broadcaster[K]{
		cast: caster.New(ctx),
		done: make(chan struct{}),
	}
}

// Notify is part of interface btree.Observer.
func (b *Broadcaster[K]) Notify(e btree.Event[K]) {
	if b.closed() || !b.cast.TryPub(e) {
		if n := b.dropped.Add(1); n == 1 {
			tracer().Infof("btree broadcast: subscriber too slow, dropping events")
		}
	}
}

// Subscribe registers a new subscriber. The returned channel buffers up to
// capacity events and is closed when ctx is done or the broadcaster is
// closed.
func (b *Broadcaster[K]) Subscribe(ctx context.Context, capacity uint) (<-chan btree.Event[K], error) {
	if b.closed() {
		return nil, ErrClosed
	}
	raw, ok := b.cast.Sub(ctx, capacity)
	if !ok {
		return nil, ErrClosed
	}
	out := make(chan btree.Event[K], capacity)
	go func() {
		defer close(out)
		for {
			var msg interface{}
			var open bool
			select {
			case msg, open = <-raw:
				if !open {
					return
				}
			case <-ctx.Done():
				b.cast.Unsub(raw)
				return
			case <-b.done:
				return
			}
			e, isEvent := msg.(btree.Event[K])
			if !isEvent {
				tracer().Errorf("btree broadcast: unexpected message type %T", msg)
				continue
			}
			select {
			case out <- e:
			case <-ctx.Done():
				b.cast.Unsub(raw)
				return
			case <-b.done:
				return
			}
		}
	}()
	return out, nil
}

// Dropped returns the number of events which could not be published.
func (b *Broadcaster[K]) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Broadcaster[K]) closed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Close stops the broadcaster and closes all subscriber channels.
func (b *Broadcaster[K]) Close() {
	b.once.Do(func() {
		close(b.done)
		b.cast.Close()
	})
}
