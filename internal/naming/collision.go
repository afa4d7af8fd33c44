package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// CollisionResolver hands out output paths to inputs within one run. Two
// releases that decode to the same library path (a REPACK next to the
// original, a 720p next to a 1080p) get " - dupN" suffixes. Paths are
// compared case-insensitively since library volumes often are. All methods
// are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // folded output path → input that owns it
	counters map[string]int    // folded requested path → next dup counter
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the final output path for input. If requested is
// unclaimed (or already owned by input) it is returned as-is; otherwise the
// first free " - dupN" variant is claimed.
func (cr *CollisionResolver) Resolve(input, requested string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.claim(input, requested) {
		return requested
	}

	dir := filepath.Dir(requested)
	ext := filepath.Ext(requested)
	stem := strings.TrimSuffix(filepath.Base(requested), ext)

	key := strings.ToLower(requested)
	counter := max(cr.counters[key], 1)
	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, counter, ext))
		counter++
		if cr.claim(input, candidate) {
			cr.counters[key] = counter
			return candidate
		}
	}
}

// Claimed returns the number of distinct output paths handed out.
func (cr *CollisionResolver) Claimed() int {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return len(cr.owners)
}

func (cr *CollisionResolver) claim(input, path string) bool {
	key := strings.ToLower(path)
	owner, exists := cr.owners[key]
	if exists && owner != input {
		return false
	}
	cr.owners[key] = input
	return true
}
