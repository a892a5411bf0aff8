package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a short stable digest of lock-file content, used for
// logging change decisions. The change decision itself always compares full
// content, never fingerprints.
func Fingerprint(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
