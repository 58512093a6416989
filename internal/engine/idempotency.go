package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewIdempotencyKey returns a token unique across the process lifetime,
// attached to mutating financial submissions so the backend can deduplicate
// retries. Millisecond timestamp plus a random UUID suffix; safe for
// concurrent use and collision-free even within the same millisecond.
func NewIdempotencyKey() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString())
}
