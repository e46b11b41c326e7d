package vector

import (
	"crypto/sha256"
	"sync"

	"aesgcm/gcm"

	"github.com/floatdrop/lru"
)

type cacheKey [sha256.Size]byte

// CipherCache keeps constructed GCM instances so repeated requests under the
// same key skip the key schedule and hash subkey derivation. Entries are
// addressed by a digest of algorithm and key.
type CipherCache struct {
	mu    sync.Mutex
	items *lru.LRU[cacheKey, *gcm.GCM]
	hits  int
	miss  int
}

func NewCipherCache(size int) *CipherCache {
	if size <= 0 {
		size = 1
	}
	return &CipherCache{items: lru.New[cacheKey, *gcm.GCM](size)}
}

func digest(alg string, key []byte) cacheKey {
	h := sha256.New()
	h.Write([]byte(alg))
	h.Write([]byte{0})
	h.Write(key)
	var k cacheKey
	copy(k[:], h.Sum(nil))
	return k
}

// Get returns the GCM instance for alg and key, building it on a miss.
func (c *CipherCache) Get(alg string, key []byte) (*gcm.GCM, error) {
	alg, err := normalizeAlgorithm(alg)
	if err != nil {
		return nil, err
	}
	k := digest(alg, key)

	c.mu.Lock()
	if g := c.items.Get(k); g != nil {
		c.hits++
		c.mu.Unlock()
		return *g, nil
	}
	c.miss++
	c.mu.Unlock()

	g, err := NewGCM(alg, key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.items.Set(k, g)
	c.mu.Unlock()
	return g, nil
}

// Stats reports hit and miss counts since construction.
func (c *CipherCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.miss
}
