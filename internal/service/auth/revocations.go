package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryRevocations отозванные сессии в памяти процесса. Подходит для одного экземпляра сервиса.
// Истекшие записи удаляются при следующем Revoke.
type MemoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocations создает пустое хранилище
func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{revoked: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryRevocations) Revoke(_ context.Context, sessionID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
		}
	}
	m.revoked[sessionID] = until
	return nil
}

func (m *MemoryRevocations) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.revoked[sessionID]
	return ok, nil
}
