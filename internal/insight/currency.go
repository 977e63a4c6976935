package insight

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// inr prints amounts with Indian digit grouping, matching how the dashboard
// renders currency.
var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount as rupees, e.g. "₹1,23,456.78".
func FormatINR(amount float64) string {
	return inr.Sprintf("₹%v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
