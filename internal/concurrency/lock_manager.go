// Package concurrency serializes read-modify-write sequences per entity key.
// Operations on different keys proceed independently; two concurrent triggers
// of the same operation (a double-tap on an enhance button) take the same
// lock and cannot interleave between the read and the write.
package concurrency

import (
	"sort"
	"sync"
)

// LockManager handles named locks
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the key's lock
func (lm *LockManager) WithLock(key string, fn func() error) error {
	mu := lm.GetLock(key)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// WithLocks runs fn while holding every key's lock. Keys are acquired in
// sorted order so two operations touching the same pair of entities cannot
// deadlock each other.
func (lm *LockManager) WithLocks(keys []string, fn func() error) error {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	acquired := make([]*sync.Mutex, 0, len(sorted))
	for i, key := range sorted {
		if i > 0 && key == sorted[i-1] {
			continue
		}
		mu := lm.GetLock(key)
		mu.Lock()
		acquired = append(acquired, mu)
	}
	defer func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}()
	return fn()
}
