package worker

import (
	"slices"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
)

// Pool is a store's roster, split into one sub-pool per role. Members keep
// their registration order.
type Pool struct {
	mu      sync.RWMutex
	members map[Role][]*Worker
}

func NewPool() *Pool {
	return &Pool{members: make(map[Role][]*Worker)}
}

// Add registers w in its role's sub-pool. Adding the same worker twice is a
// no-op; added reports whether w was new.
func (p *Pool) Add(w *Worker) (added bool, err error) {
	if err := w.Validate(); err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, member := range p.members[w.Role()] {
		if member.IsEqual(w) {
			return false, nil
		}
	}
	p.members[w.Role()] = append(p.members[w.Role()], w)
	return true, nil
}

// Members returns the role's sub-pool in registration order.
func (p *Pool) Members(role Role) []*Worker {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.members[role])
}

func (p *Pool) Assemblers() []*Worker {
	return p.Members(Assembler)
}

func (p *Pool) Couriers() []*Worker {
	return p.Members(Courier)
}

// Find looks a worker up by ID in every sub-pool.
func (p *Pool) Find(id kernel.UUID) (*Worker, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, members := range p.members {
		for _, w := range members {
			if w.ID().IsEqual(id) {
				return w, true
			}
		}
	}
	return nil, false
}
