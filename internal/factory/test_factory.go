package factory

import (
	"context"

	"github.com/mcoot/tilescore/internal/config"
	"github.com/mcoot/tilescore/internal/dependencies/mocks"
	"github.com/mcoot/tilescore/internal/services/auth"
	"github.com/mcoot/tilescore/internal/storage/memory"
	"github.com/mcoot/tilescore/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// TestOption adjusts a TestApp before it is wired
type TestOption func(*testOptions)

type testOptions struct {
	rules config.Rules
	auth  auth.Config
}

// WithRules overrides the default rules
func WithRules(rules config.Rules) TestOption {
	return func(o *testOptions) { o.rules = rules }
}

// WithPasswordHash enables organizer auth
func WithPasswordHash(hash string) TestOption {
	return func(o *testOptions) { o.auth.PasswordHash = hash }
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp(opts ...TestOption) *TestApp {
	options := testOptions{rules: config.DefaultRules(), auth: auth.DefaultConfig()}
	for _, opt := range opts {
		opt(&options)
	}

	store := memory.New()
	mockClock := mocks.NewMockClock(testutil.FixedTime)
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, options.rules, options.auth, testutil.NopLogger())
	app.Controller.Load(context.Background())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}
