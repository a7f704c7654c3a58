package memory

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh record id on every call.
type IDGenerator func() string

// UUIDGenerator yields random v4 UUID strings.
func UUIDGenerator() IDGenerator {
	return uuid.NewString
}

// TimestampGenerator yields millisecond timestamp ids. Ids stay strictly
// increasing even when several are requested within the same millisecond.
func TimestampGenerator(now func() time.Time) IDGenerator {
	if now == nil {
		now = time.Now
	}
	var (
		mu   sync.Mutex
		last int64
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		ms := now().UnixMilli()
		if ms <= last {
			ms = last + 1
		}
		last = ms
		return strconv.FormatInt(ms, 10)
	}
}
