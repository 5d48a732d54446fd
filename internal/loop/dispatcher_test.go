package loop

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/testutil"
)

type fakeEngine struct {
	mu       sync.Mutex
	applied  []model.Command
	inFlight atomic.Int32
	overlap  atomic.Bool
}

func (e *fakeEngine) Apply(cmd model.Command) (model.CommandResult, error) {
	if e.inFlight.Add(1) > 1 {
		e.overlap.Store(true)
	}
	defer e.inFlight.Add(-1)
	runtime.Gosched()

	if cmd.Type == "explode" {
		panic("engine exploded")
	}

	e.mu.Lock()
	e.applied = append(e.applied, cmd)
	count := len(e.applied)
	e.mu.Unlock()

	return model.CommandResult{
		Moved:    true,
		Snapshot: model.ViewSnapshot{Stats: model.Stats{Pieces: count}},
	}, nil
}

func (e *fakeEngine) Snapshot() model.ViewSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return model.ViewSnapshot{Stats: model.Stats{Pieces: len(e.applied)}}
}

func (e *fakeEngine) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.applied)
}

type DispatcherSuite struct {
	suite.Suite
	engine     *fakeEngine
	dispatcher *Dispatcher
	ctx        context.Context
	cancel     context.CancelFunc
	runErr     chan error
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.engine = &fakeEngine{}
	s.dispatcher = NewDispatcher(s.engine, 8, testutil.NopLogger())
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 5*time.Second)
	s.runErr = make(chan error, 1)
	go func() { s.runErr <- s.dispatcher.Run(s.ctx) }()
}

func (s *DispatcherSuite) TearDownTest() {
	s.dispatcher.Close()
	s.cancel()
}

func (s *DispatcherSuite) TestSubmitReturnsResult() {
	result, err := s.dispatcher.Submit(s.ctx, model.UserCommand(model.CommandLeft))
	s.Require().NoError(err)
	s.True(result.Moved)
	s.Equal(1, result.Snapshot.Stats.Pieces)
}

func (s *DispatcherSuite) TestSequentialOrderPreserved() {
	cmds := []model.Command{
		model.UserCommand(model.CommandLeft),
		model.GravityCommand(),
		model.UserCommand(model.CommandRotate),
		model.UserCommand(model.CommandHardDrop),
	}
	for _, cmd := range cmds {
		_, err := s.dispatcher.Submit(s.ctx, cmd)
		s.Require().NoError(err)
	}
	s.Equal(cmds, s.engine.applied)
}

func (s *DispatcherSuite) TestConcurrentSubmittersNeverOverlap() {
	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				cmd := model.UserCommand(model.CommandLeft)
				if w%2 == 0 {
					cmd = model.GravityCommand()
				}
				_, err := s.dispatcher.Submit(s.ctx, cmd)
				s.NoError(err)
			}
		}(w)
	}
	wg.Wait()

	s.Equal(workers*perWorker, s.engine.count())
	s.False(s.engine.overlap.Load(), "commands overlapped")
}

func (s *DispatcherSuite) TestSnapshotIsOrderedAfterCommands() {
	for i := 0; i < 3; i++ {
		_, err := s.dispatcher.Submit(s.ctx, model.GravityCommand())
		s.Require().NoError(err)
	}
	snap, err := s.dispatcher.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, snap.Stats.Pieces)
}

func (s *DispatcherSuite) TestPanickingCommandIsContained() {
	_, err := s.dispatcher.Submit(s.ctx, model.Command{Type: "explode", Source: model.SourceUser})
	s.ErrorIs(err, model.ErrPanicked)

	result, err := s.dispatcher.Submit(s.ctx, model.GravityCommand())
	s.Require().NoError(err)
	s.True(result.Moved)
}

func (s *DispatcherSuite) TestCloseStopsRun() {
	s.dispatcher.Close()
	s.dispatcher.Close()

	s.NoError(<-s.runErr)
	<-s.dispatcher.Done()

	_, err := s.dispatcher.Submit(s.ctx, model.GravityCommand())
	s.ErrorIs(err, model.ErrDispatcherClosed)
	_, err = s.dispatcher.Snapshot(s.ctx)
	s.ErrorIs(err, model.ErrDispatcherClosed)
}

func (s *DispatcherSuite) TestContextCancelStopsRun() {
	s.cancel()
	s.ErrorIs(<-s.runErr, context.Canceled)
}

func (s *DispatcherSuite) TestSecondRunReturnsImmediately() {
	s.NoError(s.dispatcher.Run(s.ctx))
}

func (s *DispatcherSuite) TestSubmitHonoursCallerContext() {
	d := NewDispatcher(&fakeEngine{}, 1, testutil.NopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Submit(ctx, model.GravityCommand())
	s.ErrorIs(err, context.Canceled)
}
