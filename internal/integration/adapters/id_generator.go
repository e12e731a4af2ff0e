package adapters

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bizledger/backend/internal/application/adapter"
)

// ulidGenerator issues monotonic ULIDs. The entropy source is not safe for
// concurrent use, hence the mutex.
type ulidGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewIDGenerator creates a ULID generator backed by crypto/rand.
func NewIDGenerator() adapter.IDGenerator {
	return &ulidGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// NewID returns a new ULID.
func (g *ulidGenerator) NewID() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}
