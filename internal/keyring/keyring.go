// Package keyring rotates between several Liquid API tokens.
package keyring

import (
	"fmt"
	"sync"
	"time"

	"lyquid/pkg/core"
)

type KeyRing struct {
	mu       sync.RWMutex
	keys     []*APIKey
	current  int
	strategy RotationStrategy
}

// APIKey is one Liquid API token. TokenID is sent as the token_id claim and
// Secret signs the request.
type APIKey struct {
	ID         string
	TokenID    string
	Secret     string
	Disabled   bool
	LastUsed   time.Time
	ErrorCount int
}

type RotationStrategy int

const (
	// RotationRoundRobin moves to the next key after every use.
	RotationRoundRobin RotationStrategy = iota
	// RotationOnError moves to the next key after any failed call.
	RotationOnError
	// RotationOnRateLimit moves to the next key only when Liquid answers 429.
	RotationOnRateLimit
)

func NewKeyRing(keys []*APIKey, strategy RotationStrategy) *KeyRing {
	keysCopy := make([]*APIKey, len(keys))
	for i, k := range keys {
		c := *k
		keysCopy[i] = &c
	}

	return &KeyRing{
		keys:     keysCopy,
		strategy: strategy,
	}
}

// Current returns a copy of the first enabled key at or after the cursor, or
// nil when every key is disabled.
func (k *KeyRing) Current() *APIKey {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if idx := k.currentIndex(); idx >= 0 {
		c := *k.keys[idx]
		return &c
	}
	return nil
}

// Credentials returns the current key as core.Credentials.
func (k *KeyRing) Credentials() (core.Credentials, error) {
	key := k.Current()
	if key == nil {
		return core.Credentials{}, core.ErrNoAPIKey
	}
	return core.Credentials{TokenID: key.TokenID, TokenSecret: key.Secret}, nil
}

func (k *KeyRing) currentIndex() int {
	for i := 0; i < len(k.keys); i++ {
		idx := (k.current + i) % len(k.keys)
		if !k.keys[idx].Disabled {
			return idx
		}
	}
	return -1
}

func (k *KeyRing) Rotate() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.rotateLocked()
}

func (k *KeyRing) rotateLocked() {
	if len(k.keys) == 0 {
		return
	}

	start := k.current
	for {
		k.current = (k.current + 1) % len(k.keys)
		if !k.keys[k.current].Disabled || k.current == start {
			return
		}
	}
}

// MarkUsed stamps the key with tokenID and, for round robin, advances the cursor.
func (k *KeyRing) MarkUsed(tokenID string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if key := k.byTokenID(tokenID); key != nil {
		key.LastUsed = time.Now()
	}
	if k.strategy == RotationRoundRobin {
		k.rotateLocked()
	}
}

// OnError records a failed call made with tokenID and rotates according to the strategy.
func (k *KeyRing) OnError(tokenID string, err error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	key := k.byTokenID(tokenID)
	if key == nil {
		return
	}
	key.ErrorCount++

	switch k.strategy {
	case RotationOnError:
		k.rotateLocked()
	case RotationOnRateLimit:
		if core.IsRateLimitError(err) {
			k.rotateLocked()
		}
	}
}

func (k *KeyRing) byTokenID(tokenID string) *APIKey {
	for _, key := range k.keys {
		if key.TokenID == tokenID {
			return key
		}
	}
	return nil
}

func (k *KeyRing) Disable(id string) {
	k.setDisabled(id, true)
}

func (k *KeyRing) Enable(id string) {
	k.setDisabled(id, false)
}

func (k *KeyRing) setDisabled(id string, disabled bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, key := range k.keys {
		if key.ID == id {
			key.Disabled = disabled
			if !disabled {
				key.ErrorCount = 0
			}
			return
		}
	}
}

func (k *KeyRing) Add(key *APIKey) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, existing := range k.keys {
		if existing.ID == key.ID {
			return
		}
	}

	k.keys = append(k.keys, &APIKey{
		ID:      key.ID,
		TokenID: key.TokenID,
		Secret:  key.Secret,
	})
}

func (k *KeyRing) Remove(id string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for i, key := range k.keys {
		if key.ID == id {
			k.keys = append(k.keys[:i], k.keys[i+1:]...)
			if k.current >= len(k.keys) {
				k.current = 0
			}
			return
		}
	}
}

func (k *KeyRing) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys)
}

func (k *APIKey) String() string {
	return fmt.Sprintf("APIKey{ID:%s, TokenID:%s}", k.ID, maskKey(k.TokenID))
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
