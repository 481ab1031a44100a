package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scope pins a fingerprint to its owner, account and statement so the same
// printed transaction in two accounts never collides.
type Scope struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	StatementID uuid.UUID
}

// Fingerprint computes the deterministic deduplication hash for one
// transaction. It covers only the stable identity fields (scope, resolved
// date, normalized description, absolute amount, occurrence index) and
// deliberately excludes movement_type, category and needs_review so a later
// manual correction never changes a transaction's identity.
//
// The amount is serialized at fixed two-decimal precision before hashing so
// representation drift can never produce different hashes for equal values.
// The occurrence index distinguishes genuinely identical rows appearing more
// than once in the same statement.
func Fingerprint(scope Scope, txDate time.Time, description string, amountAbs decimal.Decimal, occurrence int) string {
	descNorm := strings.ToUpper(strings.TrimSpace(description))

	input := fmt.Sprintf("%s:%s:%s:%s:%s:%s:%d",
		scope.UserID,
		scope.AccountID,
		scope.StatementID,
		txDate.Format("2006-01-02"),
		descNorm,
		amountAbs.StringFixed(2),
		occurrence,
	)

	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// OccurrenceCounter assigns occurrence indices to repeated identical rows
// within one statement, in document order. The zero value is ready to use.
type OccurrenceCounter struct {
	seen map[string]int
}

// Next returns the occurrence index for the given content and advances it.
func (c *OccurrenceCounter) Next(date, description string, amountAbs decimal.Decimal) int {
	if c.seen == nil {
		c.seen = make(map[string]int)
	}
	key := date + ":" + description + ":" + amountAbs.StringFixed(2)
	idx := c.seen[key]
	c.seen[key] = idx + 1
	return idx
}

// ValidFingerprint reports whether a string is a well-formed SHA-256 hex
// digest as produced by Fingerprint.
func ValidFingerprint(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
