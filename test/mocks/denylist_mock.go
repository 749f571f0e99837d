package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/hangang-korean/admin-service/internal/core/ports"
)

// MockTokenDenylist implements ports.TokenDenylist in memory.
type MockTokenDenylist struct {
	mu     sync.RWMutex
	denied map[string]time.Time

	DenyCalls []string

	DenyError     error
	IsDeniedError error
}

var _ ports.TokenDenylist = (*MockTokenDenylist)(nil)

func NewMockTokenDenylist() *MockTokenDenylist {
	return &MockTokenDenylist{denied: make(map[string]time.Time)}
}

func (m *MockTokenDenylist) Deny(ctx context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DenyCalls = append(m.DenyCalls, token)

	if m.DenyError != nil {
		return m.DenyError
	}

	m.denied[token] = time.Now().Add(ttl)
	return nil
}

func (m *MockTokenDenylist) IsDenied(ctx context.Context, token string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.IsDeniedError != nil {
		return false, m.IsDeniedError
	}

	expiresAt, ok := m.denied[token]
	if !ok {
		return false, nil
	}
	return time.Now().Before(expiresAt), nil
}
