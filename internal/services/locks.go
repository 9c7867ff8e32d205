package services

import "sync"

// lockTable hands out one mutex per entity key so read-then-write sequences
// on the same user or conversation serialize, while different entities
// proceed in parallel. Locks are never released from the map; the key space
// is bounded by the active entity population.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

func (t *lockTable) get(key string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	if l, ok := t.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	t.locks[key] = l
	return l
}
