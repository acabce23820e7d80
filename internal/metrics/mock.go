package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	mutations        map[string]int
	mutationFailures map[string]int
	storeDurations   map[string][]float64
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		mutations:        make(map[string]int),
		mutationFailures: make(map[string]int),
		storeDurations:   make(map[string][]float64),
	}
}

func (m *Mock) IncMutations(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations[operation]++
}

func (m *Mock) IncMutationFailures(operation, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutationFailures[operation+"/"+reason]++
}

func (m *Mock) ObserveStoreDuration(operation string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeDurations[operation] = append(m.storeDurations[operation], duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Mutations returns how many times IncMutations was called for operation.
func (m *Mock) Mutations(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutations[operation]
}

// MutationFailures returns how many times IncMutationFailures was called for
// the operation and reason pair.
func (m *Mock) MutationFailures(operation, reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutationFailures[operation+"/"+reason]
}

// StoreObservations returns how many durations were observed for operation.
func (m *Mock) StoreObservations(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.storeDurations[operation])
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
