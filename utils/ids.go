package utils

import (
	"strconv"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

var (
	idMu  sync.Mutex
	idRng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
)

// NewID returns a fresh record id: the unix-millisecond timestamp plus
// a random base36 suffix to keep two submissions within the same
// millisecond apart.
func NewID() string {
	idMu.Lock()
	suffix := idRng.Uint32()
	idMu.Unlock()
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + strconv.FormatUint(uint64(suffix), 36)
}
