package cart

import (
	"context"
	"sync"

	"canteen-orders/internal/domain"
)

// MemoryPersistence keeps carts in process memory. Used for tests and for
// single-instance deployments where the cart may die with the process.
type MemoryPersistence struct {
	mu    sync.Mutex
	carts map[string][]domain.CartLine
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{carts: make(map[string][]domain.CartLine)}
}

func (p *MemoryPersistence) Load(_ context.Context, buyerID string) ([]domain.CartLine, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	stored := p.carts[buyerID]
	lines := make([]domain.CartLine, len(stored))
	copy(lines, stored)
	return lines, nil
}

func (p *MemoryPersistence) Save(_ context.Context, buyerID string, lines []domain.CartLine) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	stored := make([]domain.CartLine, len(lines))
	copy(stored, lines)
	p.carts[buyerID] = stored
	return nil
}

func (p *MemoryPersistence) Delete(_ context.Context, buyerID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.carts, buyerID)
	return nil
}

var _ Persistence = (*MemoryPersistence)(nil)
