package exchange

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Currency is an entry of the currency picker.
type Currency struct {
	Code    string `json:"code"`
	Country string `json:"country"` // ISO 3166 alpha-2, lower case, used for the flag image
	Name    string `json:"name"`
}

// Currencies is the fixed list offered for conversion.
var Currencies = mustCurrencies([]Currency{
	{"TND", "tn", "Tunisian Dinar"},
	{"USD", "us", "United States Dollar"},
	{"EUR", "eu", "Euro"},
	{"JPY", "jp", "Japanese Yen"},
	{"GBP", "gb", "British Pound Sterling"},
	{"AUD", "au", "Australian Dollar"},
	{"CAD", "ca", "Canadian Dollar"},
	{"CHF", "ch", "Swiss Franc"},
	{"CNY", "cn", "Chinese Yuan"},
	{"NZD", "nz", "New Zealand Dollar"},
	{"SEK", "se", "Swedish Krona"},
	{"KRW", "kr", "South Korean Won"},
	{"SGD", "sg", "Singapore Dollar"},
	{"NOK", "no", "Norwegian Krone"},
	{"MXN", "mx", "Mexican Peso"},
	{"INR", "in", "Indian Rupee"},
	{"RUB", "ru", "Russian Ruble"},
	{"ZAR", "za", "South African Rand"},
	{"TRY", "tr", "Turkish Lira"},
	{"BRL", "br", "Brazilian Real"},
})

func mustCurrencies(list []Currency) []Currency {
	for _, c := range list {
		if _, err := currency.ParseISO(c.Code); err != nil {
			panic(fmt.Sprintf("exchange: %s is not an ISO 4217 code", c.Code))
		}
	}
	return list
}

// Supported reports whether code is in Currencies.
func Supported(code string) bool {
	for _, c := range Currencies {
		if c.Code == code {
			return true
		}
	}
	return false
}

// ErrInvalidAmount is returned by Convert when the amount is not a positive number.
var ErrInvalidAmount = errors.New("amount must be a positive number")

// Converter is the state of the exchange form.
type Converter struct {
	Amount string
	From   string
	To     string
	// Converted is nil until a conversion succeeds.
	Converted *decimal.Decimal
}

// NewConverter starts at USD to EUR with no amount.
func NewConverter() Converter {
	return Converter{From: "USD", To: "EUR"}
}

// Swap exchanges the two currencies. Any converted amount no longer applies.
func (c *Converter) Swap() {
	c.From, c.To = c.To, c.From
	c.Converted = nil
}

// Convert sets Converted to Amount × rate.
func (c *Converter) Convert(rate decimal.Decimal) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(c.Amount))
	if err != nil || !amount.IsPositive() {
		c.Converted = nil
		return ErrInvalidAmount
	}
	v := amount.Mul(rate)
	c.Converted = &v
	return nil
}

// Result is the "<amount> <from> = <converted> <to>" line, or "" before a conversion.
func (c Converter) Result() string {
	if c.Converted == nil {
		return ""
	}
	return fmt.Sprintf("%s %s = %s %s", c.Amount, c.From, c.Converted.StringFixed(4), c.To)
}
