package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log"
	"sync/atomic"
	"time"
)

// SequenceSource hands out the next value of the authoritative order-number
// sequence. The Postgres repository implements it with nextval(), which keeps
// numbers unique under concurrent placements from different buyers.
type SequenceSource interface {
	NextOrderNumber(ctx context.Context) (int64, error)
}

// NumberGenerator produces human-shareable order numbers. Primary strategy is
// the store's atomic sequence; when that is unavailable it degrades to a
// timestamp-based number rather than blocking placement. The fallback carries
// a random suffix plus a process-local counter, so it stays collision-free
// within one process and best-effort across processes.
type NumberGenerator struct {
	seq     SequenceSource
	counter uint64
}

func NewNumberGenerator(seq SequenceSource) *NumberGenerator {
	return &NumberGenerator{seq: seq}
}

func (g *NumberGenerator) Next(ctx context.Context) (string, error) {
	if g.seq != nil {
		n, err := g.seq.NextOrderNumber(ctx)
		if err == nil {
			return fmt.Sprintf("ORD-%06d", n), nil
		}
		log.Printf("[order-svc] order number sequence unavailable, using fallback: %v", err)
	}
	return g.fallback()
}

func (g *NumberGenerator) fallback() (string, error) {
	var suffix [2]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", err
	}
	seq := atomic.AddUint64(&g.counter, 1)
	return fmt.Sprintf("ORD-%d-%04X%04d", time.Now().UnixMilli(),
		binary.BigEndian.Uint16(suffix[:]), seq%10000), nil
}
