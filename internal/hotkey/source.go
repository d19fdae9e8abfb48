package hotkey

import (
	"fmt"
	"sync"
)

// Source captures key events and reports fired triggers by binding id.
// Implementations must deliver on the Triggered channel without blocking
// their capture loop for long; receivers may see ids that were unregistered
// a moment earlier.
type Source interface {
	// Register binds id to trigger. Registering an id again replaces its
	// previous trigger.
	Register(id string, trigger Trigger) error
	// Unregister removes id. Unknown ids are ignored.
	Unregister(id string) error
	// Triggered delivers the ids of fired bindings.
	Triggered() <-chan string
}

// MockSource is a Source for tests. Fire simulates a key-up event.
type MockSource struct {
	mu         sync.Mutex
	registered map[string]Trigger
	failIDs    map[string]bool
	calls      []MockSourceCall
	ch         chan string
}

// MockSourceCall records a Register or Unregister call.
type MockSourceCall struct {
	Op      string // "register" or "unregister"
	ID      string
	Trigger Trigger
}

// NewMockSource creates a MockSource with a buffered trigger channel.
func NewMockSource() *MockSource {
	return &MockSource{
		registered: make(map[string]Trigger),
		failIDs:    make(map[string]bool),
		ch:         make(chan string, 64),
	}
}

// Register records the registration. It fails for ids passed to FailRegister.
func (m *MockSource) Register(id string, trigger Trigger) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockSourceCall{Op: "register", ID: id, Trigger: trigger})
	if m.failIDs[id] {
		return fmt.Errorf("trigger %q already in use", trigger)
	}
	m.registered[id] = trigger
	return nil
}

// Unregister records the call and forgets id.
func (m *MockSource) Unregister(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockSourceCall{Op: "unregister", ID: id})
	delete(m.registered, id)
	return nil
}

// Triggered returns the trigger channel.
func (m *MockSource) Triggered() <-chan string {
	return m.ch
}

// Fire delivers id as if its trigger had been pressed, whether or not it is
// registered.
func (m *MockSource) Fire(id string) {
	m.ch <- id
}

// FailRegister makes future Register calls for id fail.
func (m *MockSource) FailRegister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failIDs[id] = true
}

// Registered returns a copy of the currently registered ids and triggers.
func (m *MockSource) Registered() map[string]Trigger {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Trigger, len(m.registered))
	for k, v := range m.registered {
		out[k] = v
	}
	return out
}

// Calls returns all recorded calls in order.
func (m *MockSource) Calls() []MockSourceCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockSourceCall(nil), m.calls...)
}
