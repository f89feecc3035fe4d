package mocks

import (
	"strconv"

	"github.com/mcoot/tilescore/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
// Queued IDs are returned first; afterwards IDs are prefix + counter.
type MockRandom struct {
	IDResults []string
	idIndex   int
	counter   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// ID returns the next queued ID, or a sequential one when the queue is empty
func (r *MockRandom) ID(prefix string) string {
	if r.idIndex < len(r.IDResults) {
		result := r.IDResults[r.idIndex]
		r.idIndex++
		return result
	}
	r.counter++
	return prefix + strconv.Itoa(r.counter)
}

// QueueID adds values to the ID result queue
func (r *MockRandom) QueueID(values ...string) {
	r.IDResults = append(r.IDResults, values...)
}

// Reset clears queued results and the counter
func (r *MockRandom) Reset() {
	r.IDResults = nil
	r.idIndex = 0
	r.counter = 0
}
