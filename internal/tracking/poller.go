package tracking

import (
	"context"
	"sync"

	"github.com/vovakirdan/handflap/internal/core"
)

// Reader is a blocking sample producer, such as a camera plus detector.
// Read blocks until the next frame is processed.
type Reader interface {
	Read() (core.Sample, error)
	Close() error
}

// Poller turns a blocking Reader into a Source. A single worker goroutine
// reads continuously and keeps only the latest sample in a one-slot
// channel, so a slow camera never stalls the game loop.
type Poller struct {
	reader  Reader
	latest  chan core.Sample
	done    chan struct{}
	err     error
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	closeMu sync.Mutex
	closed  bool
}

// NewPoller starts reading from r in the background.
// The poller owns r and closes it in Close.
func NewPoller(r Reader) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{
		reader: r,
		latest: make(chan core.Sample, 1),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	p.wg.Add(1)
	go p.run(ctx)

	return p
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.done)

	for ctx.Err() == nil {
		s, err := p.reader.Read()
		if err != nil {
			if ctx.Err() == nil {
				p.err = err
			}
			return
		}
		p.publish(s)
	}
}

// publish replaces any unread sample. The worker is the only sender,
// so after draining the slot the send cannot block.
func (p *Poller) publish(s core.Sample) {
	select {
	case p.latest <- s:
	default:
		select {
		case <-p.latest:
		default:
		}
		p.latest <- s
	}
}

// Sample waits for the next sample until ctx expires. A timeout yields no
// detection. Once the reader fails, its error is returned on every call.
// A pending sample is returned even when ctx is already done.
func (p *Poller) Sample(ctx context.Context) (core.Sample, error) {
	select {
	case s := <-p.latest:
		return s, nil
	default:
	}

	select {
	case s := <-p.latest:
		return s, nil
	case <-p.done:
		// A sample may have been published just before the failure
		select {
		case s := <-p.latest:
			return s, nil
		default:
		}
		if p.err != nil {
			return core.NoDetection, p.err
		}
		return core.NoDetection, ErrClosed
	case <-ctx.Done():
		return core.NoDetection, nil
	}
}

// Close stops the worker, waits for it to exit and closes the reader.
// Safe to call more than once.
func (p *Poller) Close() error {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	p.cancel()
	p.wg.Wait()
	return p.reader.Close()
}
