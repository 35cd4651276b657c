package orderid

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces order ids like "ORDER-01F4MK45QJS4WZ1VBZW1A1THD7".
// Ids from one Generator sort in creation order.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// creates a new Generator seeded from the clock
func New() *Generator {
	t := time.Now().UTC()
	return &Generator{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0),
		now:     time.Now,
	}
}

func (g *Generator) New(prefix string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	u, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	if prefix == "" {
		return u.String(), nil
	}
	return fmt.Sprintf("%s-%s", prefix, u.String()), nil
}
