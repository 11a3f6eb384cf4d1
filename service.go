package exchange

import (
	"fmt"
)

// TransactionService orchestrates order fulfillment against a user's wallet
// and appends the result to the shared ledger and to the user's private
// history. Errors are returned to the caller; deciding user-visible
// behavior belongs to the presentation layer.
type TransactionService struct {
	transactionRepository TransactionRepository
	userRepository        UserRepository
	eventService          EventService
	logger                Logger
}

func NewTransactionService(
	transactionRepository TransactionRepository,
	userRepository UserRepository,
	eventService EventService,
	logger Logger,
) *TransactionService {
	return &TransactionService{
		transactionRepository: transactionRepository,
		userRepository:        userRepository,
		eventService:          eventService,
		logger:                logger,
	}
}

// MakeOrder fulfills the order against the user's wallet and, on success,
// records it in the global ledger and in the user's history, in that order.
// A rejected order is not recorded anywhere.
func (ts *TransactionService) MakeOrder(
	order Order,
	user *User,
) (TransactionRecord, error) {
	if err := user.Wallet.FulfillOrder(order); err != nil {
		return TransactionRecord{}, fmt.Errorf(
			"could not fulfill order [%v]: [%w]",
			order,
			err,
		)
	}

	record, err := ts.transactionRepository.Record(order)
	if err != nil {
		return TransactionRecord{}, fmt.Errorf(
			"could not record order [%v]: [%w]",
			order,
			err,
		)
	}

	user.NoteOrder(record)

	if err := ts.userRepository.UpdateWallet(user); err != nil {
		return TransactionRecord{}, fmt.Errorf(
			"could not update wallet of user [%v]: [%w]",
			user.Email,
			err,
		)
	}

	ts.eventService.Publish(NewOrderFulfilledEvent(user, record))

	ts.logger.Infof(
		"order [%v] of user [%v] has been fulfilled "+
			"as transaction [%v]",
		order,
		user.Email,
		record.Number,
	)

	return record, nil
}

// RatesFor returns the buy and sell rate of the given currency.
func (ts *TransactionService) RatesFor(
	currency Currency,
) (buy float64, sell float64) {
	return currency.BuyRate(), currency.SellRate()
}

// TransactionByNumber resolves a ledger entry by its sequence number.
func (ts *TransactionService) TransactionByNumber(
	number uint64,
) (TransactionRecord, error) {
	record, err := ts.transactionRepository.ByNumber(number)
	if err != nil {
		return TransactionRecord{}, fmt.Errorf(
			"could not resolve transaction [%v]: [%w]",
			number,
			err,
		)
	}

	return record, nil
}
