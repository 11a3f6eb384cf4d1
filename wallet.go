package exchange

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
)

// ErrInsufficientFunds is returned when a requested debit exceeds the
// available balance. The failed operation leaves the wallet unchanged.
var ErrInsufficientFunds = errors.New("insufficient funds")

var walletCounter uint64

// Wallet maps currencies to non-negative balances. An absent currency means
// a zero balance. Balances are mutated only through wallet operations and
// every check-then-act sequence runs under the wallet's mutex, so two
// concurrent orders cannot both pass the sufficiency check before either
// debits.
type Wallet struct {
	// id establishes a total order over wallets, used to take locks in a
	// consistent order during transfers.
	id uint64

	mutex    sync.Mutex
	balances map[Currency]float64
}

func NewWallet() *Wallet {
	return &Wallet{
		id:       atomic.AddUint64(&walletCounter, 1),
		balances: make(map[Currency]float64),
	}
}

// AddFunds credits the funds amount to its currency. Always succeeds, as
// funds amounts are non-negative by construction.
func (w *Wallet) AddFunds(funds Funds) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.add(funds)
}

// WithdrawFunds debits the funds amount from its currency. Withdrawing
// exactly the current balance succeeds and leaves a zero balance.
func (w *Wallet) WithdrawFunds(funds Funds) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.withdraw(funds)
}

// FulfillOrder withdraws the order's source funds and credits the converted
// amount to the target currency. On insufficient funds the wallet is left
// entirely unchanged; there is no partial debit or credit.
func (w *Wallet) FulfillOrder(order Order) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	converted, err := NewFunds(order.Target, order.ConvertedAmount())
	if err != nil {
		return err
	}

	if err := w.withdraw(order.Source); err != nil {
		return err
	}

	w.add(converted)

	return nil
}

// SendMoney withdraws the funds from this wallet and credits the same
// currency and amount to the other wallet, with no conversion. If the
// withdrawal fails, the recipient's wallet is untouched.
func (w *Wallet) SendMoney(other *Wallet, funds Funds) error {
	if w == other {
		// a self transfer is a no-op beyond the sufficiency check
		w.mutex.Lock()
		defer w.mutex.Unlock()

		if err := w.withdraw(funds); err != nil {
			return err
		}

		w.add(funds)

		return nil
	}

	first, second := w, other
	if second.id < first.id {
		first, second = second, first
	}

	first.mutex.Lock()
	defer first.mutex.Unlock()
	second.mutex.Lock()
	defer second.mutex.Unlock()

	if err := w.withdraw(funds); err != nil {
		return err
	}

	other.add(funds)

	return nil
}

func (w *Wallet) Balance(currency Currency) float64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.balances[currency]
}

// BalanceEntry is a single line of a rendered wallet view.
type BalanceEntry struct {
	Currency Currency
	Amount   float64
}

// Balances returns a snapshot of all held balances, ordered alphabetically
// by currency code.
func (w *Wallet) Balances() []BalanceEntry {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	entries := make([]BalanceEntry, 0, len(w.balances))
	for currency, amount := range w.balances {
		entries = append(entries, BalanceEntry{
			Currency: currency,
			Amount:   amount,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Currency < entries[j].Currency
	})

	return entries
}

func (w *Wallet) add(funds Funds) {
	w.balances[funds.Currency] += funds.Amount
}

func (w *Wallet) withdraw(funds Funds) error {
	if w.balances[funds.Currency] < funds.Amount {
		return ErrInsufficientFunds
	}

	w.balances[funds.Currency] -= funds.Amount

	return nil
}
