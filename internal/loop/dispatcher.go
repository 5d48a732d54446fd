package loop

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/blockdrop/internal/middleware"
	"github.com/mcoot/blockdrop/internal/model"
)

// DefaultQueueSize is the request buffer used when none is given
const DefaultQueueSize = 64

// Engine is the part of game.Engine the dispatcher drives
type Engine interface {
	Apply(cmd model.Command) (model.CommandResult, error)
	Snapshot() model.ViewSnapshot
}

type response struct {
	result model.CommandResult
	err    error
}

type request struct {
	cmd      model.Command
	snapshot bool
	reply    chan response
}

// Dispatcher is the single serialization point in front of an Engine.
// Commands from any goroutine are queued and applied one at a time, in
// arrival order, on the goroutine running Run.
type Dispatcher struct {
	engine  Engine
	handler middleware.CommandHandler
	logger  *slog.Logger

	requests  chan request
	closed    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	runOnce   sync.Once
}

// NewDispatcher creates a dispatcher. Commands pass through panic recovery
// and debug logging before reaching the engine.
func NewDispatcher(engine Engine, queueSize int, logger *slog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	logger = logger.With(slog.String("component", "dispatcher"))
	handler := middleware.Chain(engine.Apply,
		middleware.Logging(logger),
		middleware.Recovery(logger),
	)
	return &Dispatcher{
		engine:   engine,
		handler:  handler,
		logger:   logger,
		requests: make(chan request, queueSize),
		closed:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run applies queued commands until ctx is cancelled or Close is called.
// Only the first call runs; later calls return immediately.
func (d *Dispatcher) Run(ctx context.Context) error {
	ran := false
	var err error
	d.runOnce.Do(func() {
		ran = true
		err = d.run(ctx)
	})
	if !ran {
		return nil
	}
	return err
}

func (d *Dispatcher) run(ctx context.Context) error {
	defer close(d.done)
	d.logger.Debug("dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("dispatcher stopped", slog.String("reason", ctx.Err().Error()))
			return ctx.Err()
		case <-d.closed:
			d.logger.Debug("dispatcher stopped", slog.String("reason", "closed"))
			return nil
		case req := <-d.requests:
			if req.snapshot {
				req.reply <- response{result: model.CommandResult{Snapshot: d.engine.Snapshot()}}
				continue
			}
			result, err := d.handler(req.cmd)
			req.reply <- response{result: result, err: err}
		}
	}
}

// Submit queues cmd and waits for its result
func (d *Dispatcher) Submit(ctx context.Context, cmd model.Command) (model.CommandResult, error) {
	return d.send(ctx, request{cmd: cmd})
}

// Snapshot reads a snapshot through the queue, ordered after every
// command submitted before it
func (d *Dispatcher) Snapshot(ctx context.Context) (model.ViewSnapshot, error) {
	resp, err := d.send(ctx, request{snapshot: true})
	return resp.Snapshot, err
}

func (d *Dispatcher) send(ctx context.Context, req request) (model.CommandResult, error) {
	req.reply = make(chan response, 1)

	select {
	case <-d.closed:
		return model.CommandResult{}, model.ErrDispatcherClosed
	case <-d.done:
		return model.CommandResult{}, model.ErrDispatcherClosed
	case <-ctx.Done():
		return model.CommandResult{}, ctx.Err()
	case d.requests <- req:
	}

	select {
	case resp := <-req.reply:
		return resp.result, resp.err
	case <-d.done:
		// Run may have replied just before exiting
		select {
		case resp := <-req.reply:
			return resp.result, resp.err
		default:
			return model.CommandResult{}, model.ErrDispatcherClosed
		}
	case <-ctx.Done():
		return model.CommandResult{}, ctx.Err()
	}
}

// Close stops Run. Safe to call more than once.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.closed)
	})
}

// Done is closed once Run has returned
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}
