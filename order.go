package exchange

import "fmt"

type OrderSide int

const (
	Buy OrderSide = iota
	Sell
)

func ParseOrderSide(value string) (OrderSide, error) {
	switch value {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	}

	return -1, fmt.Errorf("unknown order side: [%v]", value)
}

func (os OrderSide) String() string {
	switch os {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		panic("unknown order side")
	}
}

// Opposite returns the other side of the spread.
func (os OrderSide) Opposite() OrderSide {
	switch os {
	case Buy:
		return Sell
	case Sell:
		return Buy
	default:
		panic("unknown order side")
	}
}

// Order describes a requested conversion: source funds exchanged into the
// target currency. Immutable once constructed.
type Order struct {
	Source Funds
	Target Currency
	Side   OrderSide
}

func NewOrder(source Funds, target Currency, side OrderSide) Order {
	return Order{
		Source: source,
		Target: target,
		Side:   side,
	}
}

// ConvertedAmount computes the amount credited in the target currency. The
// order's side applies to the source currency; the target currency trades
// on the other side of the spread.
func (o Order) ConvertedAmount() float64 {
	return o.Source.Amount *
		o.Source.Currency.Rate(o.Side) /
		o.Target.Rate(o.Side.Opposite())
}

func (o Order) String() string {
	return fmt.Sprintf(
		"%v %.2f %v for %v",
		o.Side,
		o.Source.Amount,
		o.Source.Currency,
		o.Target,
	)
}
