package factory

import (
	"time"

	"github.com/mcoot/blockdrop/internal/dependencies/mocks"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/storage/memory"
	"github.com/mcoot/blockdrop/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
	MockBotRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Pieces are drawn from MockRandom, so an empty queue yields only I pieces.
// Bot strategies draw from MockBotRandom.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockBotRandom := mocks.NewMockRandom()

	app, err := newWithDependencies(store, mockClock, mockRandom, mockBotRandom, game.DefaultConfig(), 0, testutil.NopLogger())
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:        app,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		MockBotRandom: mockBotRandom,
	}
}
