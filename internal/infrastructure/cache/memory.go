package cache

import (
	"sync"
	"time"
)

// MemoryStore keeps short-lived values (OAuth state tokens) in process
// memory. It backs the Store interface when no Redis host is configured,
// which is enough for a single-instance deployment.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryStore creates the store and starts its expiry sweeper
func NewMemoryStore() *MemoryStore {
	ms := &MemoryStore{
		entries: make(map[string]memoryEntry),
	}

	go ms.sweep()

	return ms
}

// Set stores a value until expiration elapses
func (ms *MemoryStore) Set(key string, value string, expiration time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(expiration),
	}
}

// Get returns the value for key when present and not yet expired
func (ms *MemoryStore) Get(key string) (string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	entry, ok := ms.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.value, true
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.entries, key)
}

// sweep drops expired entries so abandoned OAuth states do not accumulate
func (ms *MemoryStore) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		ms.mu.Lock()
		for key, entry := range ms.entries {
			if now.After(entry.expiresAt) {
				delete(ms.entries, key)
			}
		}
		ms.mu.Unlock()
	}
}
