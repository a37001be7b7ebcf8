// Package id mints the ULID identifiers attached to every transaction
// and order record. Because a ULID's leading bits encode its creation
// time, ids sort lexicographically in the order they were generated:
// ledger rows, journal bucket keys and database indexes all stay in
// append order without a separate sequence column.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (g *generator) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), g.entropy).String()
}

var std = newGenerator()

func newGenerator() *generator {
	// Seed from crypto/rand; ulid.Monotonic keeps ids generated within
	// the same millisecond strictly increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &generator{entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)}
}

// New returns the next ULID string from the process-wide generator.
func New() string {
	return std.next()
}
