package collect

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the hex xxhash of a document body.
func ComputeHash(body []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(body))
}
