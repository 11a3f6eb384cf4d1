package exchange

import (
	"testing"
)

func TestParseCurrency(t *testing.T) {
	currency, err := ParseCurrency("CAD")
	if err != nil {
		t.Fatal(err)
	}

	if currency != CAD {
		t.Errorf(
			"unexpected currency\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			CAD,
			currency,
		)
	}
}

func TestParseCurrency_Unknown(t *testing.T) {
	_, err := ParseCurrency("CHF")
	if err == nil {
		t.Errorf("expected an error for unknown currency")
	}
}

func TestCurrency_BaseRates(t *testing.T) {
	if BaseCurrency.BuyRate() != 1.0 {
		t.Errorf(
			"unexpected base currency buy rate\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			1.0,
			BaseCurrency.BuyRate(),
		)
	}

	if BaseCurrency.SellRate() != 1.0 {
		t.Errorf(
			"unexpected base currency sell rate\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			1.0,
			BaseCurrency.SellRate(),
		)
	}
}

func TestConvertibleCurrencies(t *testing.T) {
	currencies := ConvertibleCurrencies()

	for i, currency := range currencies {
		if currency == BaseCurrency {
			t.Errorf(
				"base currency [%v] must not be convertible",
				BaseCurrency,
			)
		}

		if currency.BuyRate() <= 0 || currency.SellRate() <= 0 {
			t.Errorf("rates of currency [%v] must be positive", currency)
		}

		if i > 0 && currencies[i-1] >= currency {
			t.Errorf(
				"currencies are not ordered: [%v] before [%v]",
				currencies[i-1],
				currency,
			)
		}
	}
}

func TestConvertibleRates(t *testing.T) {
	for _, rates := range ConvertibleRates() {
		if rates.Buy != rates.Currency.BuyRate() {
			t.Errorf(
				"unexpected buy rate of currency [%v]\n"+
					"expected: [%v]\n"+
					"actual:   [%v]",
				rates.Currency,
				rates.Currency.BuyRate(),
				rates.Buy,
			)
		}

		if rates.Sell != rates.Currency.SellRate() {
			t.Errorf(
				"unexpected sell rate of currency [%v]\n"+
					"expected: [%v]\n"+
					"actual:   [%v]",
				rates.Currency,
				rates.Currency.SellRate(),
				rates.Sell,
			)
		}
	}
}

func TestParseOrderSide(t *testing.T) {
	side, err := ParseOrderSide("SELL")
	if err != nil {
		t.Fatal(err)
	}

	if side != Sell {
		t.Errorf(
			"unexpected order side\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			Sell,
			side,
		)
	}

	if _, err := ParseOrderSide("HOLD"); err == nil {
		t.Errorf("expected an error for unknown order side")
	}
}

func TestOrderSide_Opposite(t *testing.T) {
	if Buy.Opposite() != Sell {
		t.Errorf("opposite of BUY should be SELL")
	}

	if Sell.Opposite() != Buy {
		t.Errorf("opposite of SELL should be BUY")
	}
}
