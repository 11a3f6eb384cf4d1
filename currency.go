package exchange

import (
	"fmt"
)

// Currency is one of the closed set of currencies the exchange office
// operates on. Each currency carries a buy and a sell rate expressed in the
// base currency. The two rates are independent and model the bid/ask spread.
type Currency string

const (
	AUD Currency = "AUD"
	CAD Currency = "CAD"
	JPY Currency = "JPY"
	PLN Currency = "PLN"
	SEK Currency = "SEK"
	USD Currency = "USD"
)

// BaseCurrency is the accounting currency. Both of its rates are fixed at 1
// and it is never offered as a convertible currency in listings.
const BaseCurrency = PLN

type currencyRate struct {
	buy  float64
	sell float64
}

var currencyRates = map[Currency]currencyRate{
	AUD: {buy: 2.65, sell: 2.55},
	CAD: {buy: 2.95, sell: 2.85},
	JPY: {buy: 0.027, sell: 0.025},
	PLN: {buy: 1.0, sell: 1.0},
	SEK: {buy: 0.38, sell: 0.36},
	USD: {buy: 3.95, sell: 3.85},
}

func ParseCurrency(value string) (Currency, error) {
	currency := Currency(value)

	if _, exists := currencyRates[currency]; !exists {
		return "", fmt.Errorf("unknown currency: [%v]", value)
	}

	return currency, nil
}

func (c Currency) String() string {
	return string(c)
}

// Rate returns the exchange rate of the currency for the given order side.
func (c Currency) Rate(side OrderSide) float64 {
	rate, exists := currencyRates[c]
	if !exists {
		panic("unknown currency")
	}

	switch side {
	case Buy:
		return rate.buy
	case Sell:
		return rate.sell
	default:
		panic("unknown order side")
	}
}

func (c Currency) BuyRate() float64 {
	return c.Rate(Buy)
}

func (c Currency) SellRate() float64 {
	return c.Rate(Sell)
}

// CurrencyRates holds both rates of a single currency, as presented in
// rate listings.
type CurrencyRates struct {
	Currency Currency
	Buy      float64
	Sell     float64
}

// ConvertibleCurrencies returns all currencies except the base one, ordered
// alphabetically by code.
func ConvertibleCurrencies() []Currency {
	return []Currency{AUD, CAD, JPY, SEK, USD}
}

// ConvertibleRates returns the rate listing backing rate views, excluding
// the base currency.
func ConvertibleRates() []CurrencyRates {
	currencies := ConvertibleCurrencies()

	rates := make([]CurrencyRates, 0, len(currencies))
	for _, currency := range currencies {
		rates = append(rates, CurrencyRates{
			Currency: currency,
			Buy:      currency.BuyRate(),
			Sell:     currency.SellRate(),
		})
	}

	return rates
}
