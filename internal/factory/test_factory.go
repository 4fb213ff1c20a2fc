package factory

import (
	"time"

	"github.com/tomasrivera/gaming-platform/internal/dependencies/mocks"
	"github.com/tomasrivera/gaming-platform/internal/storage/memory"
	"github.com/tomasrivera/gaming-platform/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock controls time in tests
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with an in-memory
// store and a mocked clock
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
