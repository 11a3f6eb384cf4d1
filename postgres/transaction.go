package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	exchange "github.com/Noozen/Currency-Exchange"
)

// TransactionRepository keeps the ledger in the ledger_transaction table.
// Sequence numbers come from the table's bigserial primary key, so number
// allocation is serialized by the database.
type TransactionRepository struct {
	client *Client
}

func NewTransactionRepository(client *Client) *TransactionRepository {
	return &TransactionRepository{client}
}

func (tr *TransactionRepository) Record(
	order exchange.Order,
) (exchange.TransactionRecord, error) {
	query := `INSERT INTO ledger_transaction (description, time)
		VALUES ($1, $2)
		RETURNING number`

	record := exchange.TransactionRecord{
		Description: order.String(),
		Time:        time.Now(),
	}

	err := tr.client.instance().Get(
		&record.Number,
		query,
		record.Description,
		record.Time,
	)
	if err != nil {
		return exchange.TransactionRecord{}, fmt.Errorf(
			"could not execute command for order [%v]: [%v]",
			order,
			err,
		)
	}

	return record, nil
}

func (tr *TransactionRepository) ByNumber(
	number uint64,
) (exchange.TransactionRecord, error) {
	var row transactionRow

	query := `SELECT number, description, time
		FROM ledger_transaction WHERE number = $1`

	err := tr.client.instance().Get(&row, query, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return exchange.TransactionRecord{},
				exchange.ErrTransactionNotFound
		}

		return exchange.TransactionRecord{}, fmt.Errorf(
			"could not execute query for transaction [%v]: [%v]",
			number,
			err,
		)
	}

	return row.unwrap(), nil
}

func (tr *TransactionRepository) Count() (uint64, error) {
	var count uint64

	query := `SELECT COUNT(*) FROM ledger_transaction`

	err := tr.client.instance().Get(&count, query)
	if err != nil {
		return 0, fmt.Errorf("could not execute query: [%v]", err)
	}

	return count, nil
}

type transactionRow struct {
	Number      uint64
	Description string
	Time        time.Time
}

func (tr *transactionRow) unwrap() exchange.TransactionRecord {
	return exchange.TransactionRecord{
		Number:      tr.Number,
		Description: tr.Description,
		Time:        tr.Time,
	}
}
