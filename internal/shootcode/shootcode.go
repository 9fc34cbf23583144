// Package shootcode generates and validates the short join codes archers
// type to enter a shared shoot, and computes the default shoot expiry.
package shootcode

import (
	"fmt"
	"regexp"
	"time"

	"github.com/archerylive/shootlive/internal/common/random"
)

// codeSpace is the number of possible join codes ("0000" through "9999")
const codeSpace = 10000

var codePattern = regexp.MustCompile(`^[0-9]{4}$`)

// Generate returns a uniformly random 4-digit join code, left-padded with
// zeros. Uniqueness against active shoots is the caller's responsibility.
func Generate(src random.Source) string {
	return fmt.Sprintf("%04d", src.Intn(codeSpace))
}

// IsValid reports whether code is exactly four ASCII digits.
func IsValid(code string) bool {
	return codePattern.MatchString(code)
}

// ExpirationTime returns the end of the given day (23:59:59.999) in that
// time's location. Shoots expire at the end of their creation day.
func ExpirationTime(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(999*time.Millisecond), now.Location())
}
