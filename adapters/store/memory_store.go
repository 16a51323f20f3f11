package store

import (
	"context"
	"sync"
	"time"

	"github.com/qlap/traingate/ports"
)

// MemoryDenyList is an in-memory implementation of the DenyList interface
type MemoryDenyList struct {
	revoked map[string]time.Time
	mu      sync.RWMutex
}

// NewMemoryDenyList creates a new in-memory deny-list
func NewMemoryDenyList() ports.DenyList {
	return &MemoryDenyList{
		revoked: make(map[string]time.Time),
	}
}

// Revoke records a token identifier until its natural expiry. Entries whose
// tokens have since expired are swept out on the same write, so the map
// never outgrows the set of live revocations.
func (s *MemoryDenyList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, expiry := range s.revoked {
		if now.After(expiry) {
			delete(s.revoked, id)
		}
	}

	s.revoked[tokenID] = now.Add(ttl)
	return nil
}

// IsRevoked checks whether a token identifier is on the deny-list
func (s *MemoryDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiryTime, exists := s.revoked[tokenID]
	if !exists {
		return false, nil
	}

	// The revocation record is moot once the token itself has expired
	if time.Now().After(expiryTime) {
		return false, nil
	}

	return true, nil
}
