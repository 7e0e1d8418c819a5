package mockauth

import (
	"context"
	"sync"
	"sync/atomic"
)

// notifyDispatcher decouples engine operations from sink latency: emissions
// go through a buffered channel serviced by one background goroutine, and
// Close drains whatever is still queued.
type notifyDispatcher struct {
	cfg       NotifyConfig
	sink      NotifierSink
	ch        chan Notification
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func newNotifyDispatcher(cfg NotifyConfig, sink NotifierSink) *notifyDispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &notifyDispatcher{
		cfg:  cfg,
		sink: sink,
		ch:   make(chan Notification, cfg.BufferSize),
		done: make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *notifyDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case n := <-d.ch:
			d.sink.Emit(context.Background(), n)
		case <-d.done:
			for {
				select {
				case n := <-d.ch:
					d.sink.Emit(context.Background(), n)
				default:
					return
				}
			}
		}
	}
}

func (d *notifyDispatcher) Emit(ctx context.Context, n Notification) {
	if d == nil || d.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.cfg.DropIfFull {
		select {
		case d.ch <- n:
		case <-d.done:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.ch <- n:
	case <-ctx.Done():
	case <-d.done:
	}
}

func (d *notifyDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

func (d *notifyDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
