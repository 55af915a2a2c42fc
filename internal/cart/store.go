package cart

import (
	"context"

	"canteen-orders/internal/domain"
)

// Persistence is the injected port behind the cart store. Implementations
// keep one ordered line slice per buyer; the store never assumes where it
// lives (memory, Redis, anything row-shaped works).
type Persistence interface {
	Load(ctx context.Context, buyerID string) ([]domain.CartLine, error)
	Save(ctx context.Context, buyerID string, lines []domain.CartLine) error
	Delete(ctx context.Context, buyerID string) error
}

// Store holds a buyer's pending selections. Lines are unique by
// (itemID, kind) and quantity never drops below 1 while a line exists.
// The store is identity-agnostic: callers gate unauthenticated buyers.
type Store struct {
	port Persistence
}

func NewStore(port Persistence) *Store {
	return &Store{port: port}
}

// AddOrIncrement bumps the quantity of an existing line with the same
// identity, or appends a fresh line with quantity 1.
func (s *Store) AddOrIncrement(ctx context.Context, buyerID string, item domain.CartLine) ([]domain.CartLine, error) {
	lines, err := s.port.Load(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].Is(item.ItemID, item.ItemKind) {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		lines = append(lines, item)
	}

	if err := s.port.Save(ctx, buyerID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// ChangeQuantity applies a delta to an existing line, clamped at 1. Driving
// a line to zero goes through Remove instead. Absent lines are a no-op.
func (s *Store) ChangeQuantity(ctx context.Context, buyerID, itemID string, kind domain.ItemKind, delta int) ([]domain.CartLine, error) {
	lines, err := s.port.Load(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	changed := false
	for i := range lines {
		if lines[i].Is(itemID, kind) {
			quantity := lines[i].Quantity + delta
			if quantity < 1 {
				quantity = 1
			}
			changed = lines[i].Quantity != quantity
			lines[i].Quantity = quantity
			break
		}
	}
	if !changed {
		return lines, nil
	}

	if err := s.port.Save(ctx, buyerID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Remove deletes the line with the given identity; no-op if absent.
func (s *Store) Remove(ctx context.Context, buyerID, itemID string, kind domain.ItemKind) ([]domain.CartLine, error) {
	lines, err := s.port.Load(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	for _, line := range lines {
		if !line.Is(itemID, kind) {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return lines, nil
	}

	if err := s.port.Save(ctx, buyerID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Snapshot returns the current ordered lines. The result is a copy; mutating
// it does not touch the stored cart.
func (s *Store) Snapshot(ctx context.Context, buyerID string) ([]domain.CartLine, error) {
	lines, err := s.port.Load(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	snapshot := make([]domain.CartLine, len(lines))
	copy(snapshot, lines)
	return snapshot, nil
}

// Clear empties the buyer's cart. Called once after a confirmed placement.
func (s *Store) Clear(ctx context.Context, buyerID string) error {
	return s.port.Delete(ctx, buyerID)
}
