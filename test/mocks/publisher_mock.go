package mocks

import (
	"context"
	"sync"

	"github.com/hangang-korean/admin-service/internal/core/ports"
)

// MockEnrollmentPublisher implements ports.EnrollmentEventPublisher for
// testing the outbox relay without a real RabbitMQ connection.
type MockEnrollmentPublisher struct {
	mu sync.RWMutex

	// Track published events for verification
	PublishedEvents []OutboxRecord

	// Error injection for testing error scenarios
	PublishError error

	// Track number of calls
	PublishCallCount int
}

var _ ports.EnrollmentEventPublisher = (*MockEnrollmentPublisher)(nil)

func NewMockEnrollmentPublisher() *MockEnrollmentPublisher {
	return &MockEnrollmentPublisher{}
}

func (m *MockEnrollmentPublisher) PublishEnrollmentEvent(ctx context.Context, eventType string, evt ports.EnrollmentEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, OutboxRecord{EventType: eventType, Event: evt})
	return nil
}

// GetPublishedEvents returns a copy of everything published so far.
func (m *MockEnrollmentPublisher) GetPublishedEvents() []OutboxRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]OutboxRecord, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}

// Reset clears all tracking data.
func (m *MockEnrollmentPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishedEvents = nil
	m.PublishError = nil
	m.PublishCallCount = 0
}
