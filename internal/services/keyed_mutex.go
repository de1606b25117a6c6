package services

import (
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"sync"
)

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// keyedMutex serialises work per application key. Entries are dropped once
// nobody holds or waits for them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[models.ApplicationKey]*keyLock
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[models.ApplicationKey]*keyLock)}
}

func (k *keyedMutex) Lock(key models.ApplicationKey) (unlock func()) {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &keyLock{}
		k.locks[key] = lock
	}
	lock.refs++
	k.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		k.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
