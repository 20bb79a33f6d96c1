package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore — хранилище сессий в памяти процесса. Используется, когда
// Redis не сконфигурирован (демо-режим), и в тестах. Сессии живут до
// истечения TTL или перезапуска процесса.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// NewMemoryStore создает MemoryStore с заданным TTL сессий.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Load возвращает копию данных сессии; просроченные записи удаляются лениво.
func (s *MemoryStore) Load(_ context.Context, sid string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sid]
	if !ok {
		return &Data{}, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, sid)
		return &Data{}, nil
	}
	data := e.data
	return &data, nil
}

// Save сохраняет данные сессии и продлевает TTL.
func (s *MemoryStore) Save(_ context.Context, sid string, data *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sid] = memoryEntry{
		data:      *data,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Delete удаляет сессию.
func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sid)
	return nil
}
