package notify

import "sync"

// NotificationCall records one Notify invocation.
type NotificationCall struct {
	Level   Level
	Title   string
	Message string
}

// EventCall records one Event invocation.
type EventCall struct {
	Type    string
	Payload interface{}
}

// Mock is a Notifier for tests. It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	Notifications []NotificationCall
	Events        []EventCall
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Notify(level Level, title, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = append(m.Notifications, NotificationCall{Level: level, Title: title, Message: message})
}

func (m *Mock) Event(eventType string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, EventCall{Type: eventType, Payload: payload})
}

// Reset clears all recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = nil
	m.Events = nil
}

// LastNotification returns the most recent Notify call, or nil.
func (m *Mock) LastNotification() *NotificationCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Notifications) == 0 {
		return nil
	}
	call := m.Notifications[len(m.Notifications)-1]
	return &call
}

// HasEvent reports whether an event of the given type was broadcast.
func (m *Mock) HasEvent(eventType string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Events {
		if e.Type == eventType {
			return true
		}
	}
	return false
}
