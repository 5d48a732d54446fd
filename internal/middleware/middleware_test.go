package middleware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/testutil"
)

type MiddlewareSuite struct {
	suite.Suite
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

// Recover tests

func (s *MiddlewareSuite) TestRecoverPassesThroughResult() {
	errBoom := errors.New("boom")
	s.NoError(Recover(testutil.NopLogger(), "ok", func() error { return nil }))
	s.ErrorIs(Recover(testutil.NopLogger(), "fails", func() error { return errBoom }), errBoom)
}

func (s *MiddlewareSuite) TestRecoverConvertsPanic() {
	logger, buf := testutil.CaptureLogger()

	err := Recover(logger, "observer", func() error { panic("kaboom") })

	s.ErrorIs(err, model.ErrPanicked)
	s.Contains(err.Error(), "kaboom")
	s.Contains(buf.String(), "panic recovered")
	s.Contains(buf.String(), `"handler":"observer"`)
}

// Recovery middleware tests

func (s *MiddlewareSuite) TestRecoveryMiddleware() {
	handler := Recovery(testutil.NopLogger())(func(cmd model.Command) (model.CommandResult, error) {
		panic("engine exploded")
	})

	_, err := handler(model.UserCommand(model.CommandDown))
	s.ErrorIs(err, model.ErrPanicked)
}

// Chain tests

func (s *MiddlewareSuite) TestChainOrder() {
	var calls []string
	record := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return func(cmd model.Command) (model.CommandResult, error) {
				calls = append(calls, name)
				return next(cmd)
			}
		}
	}
	handler := Chain(func(cmd model.Command) (model.CommandResult, error) {
		calls = append(calls, "handler")
		return model.CommandResult{Moved: true}, nil
	}, record("outer"), record("inner"))

	result, err := handler(model.UserCommand(model.CommandLeft))
	s.Require().NoError(err)
	s.True(result.Moved)
	s.Equal([]string{"outer", "inner", "handler"}, calls)
}

// Logging tests

func (s *MiddlewareSuite) TestLoggingRecordsCommand() {
	logger, buf := testutil.CaptureLogger()
	handler := Logging(logger)(func(cmd model.Command) (model.CommandResult, error) {
		return model.CommandResult{Moved: true, Outcome: &model.ClearOutcome{LinesRemoved: 2}}, nil
	})

	_, err := handler(model.GravityCommand())
	s.Require().NoError(err)

	out := buf.String()
	s.Contains(out, "command applied")
	s.Contains(out, `"command":"down"`)
	s.Contains(out, `"source":"scheduler"`)
	s.Contains(out, `"lines":2`)
}

func (s *MiddlewareSuite) TestLoggingRecordsFailure() {
	logger, buf := testutil.CaptureLogger()
	handler := Logging(logger)(func(cmd model.Command) (model.CommandResult, error) {
		return model.CommandResult{}, model.ErrUnknownCommand
	})

	_, err := handler(model.Command{Type: "jump", Source: model.SourceUser})
	s.ErrorIs(err, model.ErrUnknownCommand)
	s.Contains(buf.String(), "command failed")
}
