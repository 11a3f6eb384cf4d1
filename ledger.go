package exchange

import (
	"errors"
	"fmt"
	"time"
)

// ErrTransactionNotFound is returned by ledger lookups for sequence numbers
// that were never issued.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRecord is a single entry of the global ledger. Records are
// immutable once appended; there is no deletion or mutation API.
type TransactionRecord struct {
	// Number is the 1-based, gapless, monotonically increasing sequence
	// number, global across the ledger.
	Number      uint64
	Description string
	Time        time.Time
}

func (tr TransactionRecord) String() string {
	return fmt.Sprintf("#%v: %v", tr.Number, tr.Description)
}

// TransactionRepository is the append-only ledger of fulfilled orders. A
// single shared instance backs all fulfilled orders regardless of which
// user performed them. Sequence number allocation must be globally
// serialized so numbers stay unique and gapless under concurrent records.
type TransactionRepository interface {
	Record(order Order) (TransactionRecord, error)

	ByNumber(number uint64) (TransactionRecord, error)

	Count() (uint64, error)
}
