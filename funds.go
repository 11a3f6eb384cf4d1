package exchange

import "fmt"

// Funds is a transient quantity of money to move, not a balance.
type Funds struct {
	Currency Currency
	Amount   float64
}

func NewFunds(currency Currency, amount float64) (Funds, error) {
	if amount < 0 {
		return Funds{}, fmt.Errorf(
			"funds amount must not be negative: [%v]",
			amount,
		)
	}

	return Funds{Currency: currency, Amount: amount}, nil
}

func (f Funds) String() string {
	return fmt.Sprintf("%.2f %v", f.Amount, f.Currency)
}
