package notifier

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gcastellov/go-progress/progress"
	"github.com/go-logr/logr"
)

const defaultBufferSize = 100

// Channel hands snapshots to a Go channel for programmatic consumption.
//
// Sends never block: when the consumer does not keep up the snapshot is
// dropped and counted. The channel is closed by Close or when the context
// given to NewChannel is cancelled, so consumers can range over Stats.
type Channel struct {
	stats   chan progress.Stats
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
	log     logr.Logger
	size    int
}

type ChannelOption func(*Channel)

// WithLogger logs every dropped snapshot at V(1).
func WithLogger(log logr.Logger) ChannelOption {
	return func(c *Channel) {
		c.log = log
	}
}

// WithBufferSize sets the channel capacity. Defaults to 100.
func WithBufferSize(size int) ChannelOption {
	return func(c *Channel) {
		if size > 0 {
			c.size = size
		}
	}
}

func NewChannel(ctx context.Context, opts ...ChannelOption) *Channel {
	c := &Channel{
		log:  logr.Discard(),
		size: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.stats = make(chan progress.Stats, c.size)

	go func() {
		<-ctx.Done()
		c.Close()
	}()

	return c
}

// Notify sends stats without blocking. Safe for concurrent use, and a no-op
// once the channel is closed.
func (c *Channel) Notify(stats progress.Stats) {
	// The read lock keeps Close from closing the channel mid-send.
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return
	}

	select {
	case c.stats <- stats:
	default:
		dropped := c.dropped.Add(1)
		c.log.V(1).Info("progress stats dropped due to slow consumer",
			"current", stats.CurrentCount,
			"expected", stats.ExpectedItems,
			"total_dropped", dropped,
		)
	}
}

func (c *Channel) Stats() <-chan progress.Stats {
	return c.stats
}

// Dropped returns how many snapshots were dropped because the buffer was full.
func (c *Channel) Dropped() uint64 {
	return c.dropped.Load()
}

// Close closes the channel. Calling it more than once is fine.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.stats)
}
