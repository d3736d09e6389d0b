package idgen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// CreateID returns an opaque identifier unique with overwhelming
// probability across all calls and process restarts. It never fails: if
// the random UUID source is unavailable, it falls back to the current
// nanosecond timestamp with a random suffix.
func CreateID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("%d-%06d", time.Now().UnixNano(), rand.Intn(1000000))
	}
	return id.String()
}
