package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReceiptNumber derives a receipt identifier from a parent row id:
// RCT-<4-digit year>-<first 8 chars of the id, uppercased>. Ids are uuids,
// so the suffix is random hex; the transactions table carries a unique
// index on the receipt column so a prefix collision surfaces as an insert
// error rather than a silent duplicate.
func ReceiptNumber(id uuid.UUID, at time.Time) string {
	compact := strings.ReplaceAll(id.String(), "-", "")
	return fmt.Sprintf("RCT-%04d-%s", at.Year(), strings.ToUpper(compact[:8]))
}
