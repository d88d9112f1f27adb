package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ShortID returns eight hex characters, enough to tell fetch cycles apart
// in the log.
func ShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
