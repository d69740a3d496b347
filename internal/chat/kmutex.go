package chat

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex gives exclusive access per entity ID. Entries are created on
// first use and kept for the life of the process.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (k *keyedMutex) Lock(key uuid.UUID) {
	k.get(key).Lock()
}

func (k *keyedMutex) Unlock(key uuid.UUID) {
	k.get(key).Unlock()
}

func (k *keyedMutex) get(key uuid.UUID) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	if m, ok := k.locks[key]; ok {
		return m
	}
	m := &sync.Mutex{}
	k.locks[key] = m
	return m
}
