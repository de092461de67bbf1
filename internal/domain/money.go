package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// AmountFormatter renders monetary amounts for the tenant's locale. It is
// used for the narration note appended to a partial-loss sibling.
type AmountFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewAmountFormatter builds a formatter for the given BCP-47 tag and
// currency symbol.
func NewAmountFormatter(tag language.Tag, symbol string) *AmountFormatter {
	return &AmountFormatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Format renders the amount with locale-appropriate digit grouping and
// decimal separator, prefixed by the currency symbol.
func (f *AmountFormatter) Format(v decimal.Decimal) string {
	fl, _ := v.Round(2).Float64()
	return f.printer.Sprintf("%s %.2f", f.symbol, fl)
}
