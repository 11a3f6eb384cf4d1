package inmem

import (
	"sync"
	"time"

	exchange "github.com/Noozen/Currency-Exchange"
)

// TransactionRepository is the in-process ledger. Appends are serialized by
// the mutex, which keeps sequence numbers unique and gapless.
type TransactionRepository struct {
	recordsMutex sync.RWMutex
	records      []exchange.TransactionRecord
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		records: make([]exchange.TransactionRecord, 0),
	}
}

func (tr *TransactionRepository) Record(
	order exchange.Order,
) (exchange.TransactionRecord, error) {
	tr.recordsMutex.Lock()
	defer tr.recordsMutex.Unlock()

	record := exchange.TransactionRecord{
		Number:      uint64(len(tr.records)) + 1,
		Description: order.String(),
		Time:        time.Now(),
	}

	tr.records = append(tr.records, record)

	return record, nil
}

func (tr *TransactionRepository) ByNumber(
	number uint64,
) (exchange.TransactionRecord, error) {
	tr.recordsMutex.RLock()
	defer tr.recordsMutex.RUnlock()

	if number == 0 || number > uint64(len(tr.records)) {
		return exchange.TransactionRecord{}, exchange.ErrTransactionNotFound
	}

	return tr.records[number-1], nil
}

func (tr *TransactionRepository) Count() (uint64, error) {
	tr.recordsMutex.RLock()
	defer tr.recordsMutex.RUnlock()

	return uint64(len(tr.records)), nil
}
