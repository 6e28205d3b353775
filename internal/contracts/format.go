package contracts

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale   = "ru-RU"
	DefaultCurrency = "₽"

	createdAtLayout = "02.01.2006, 15:04:05"
)

// Formatter renders contract values for display. The zero value formats
// with DefaultLocale and DefaultCurrency.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter builds a Formatter for a BCP 47 locale such as "ru-RU".
// Unknown locales fall back to DefaultLocale.
func NewFormatter(locale, currency string) Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.Russian
	}
	if strings.TrimSpace(currency) == "" {
		currency = DefaultCurrency
	}
	return Formatter{printer: message.NewPrinter(tag), currency: currency}
}

func (f Formatter) ensure() Formatter {
	if f.printer == nil {
		return NewFormatter(DefaultLocale, DefaultCurrency)
	}
	return f
}

// Date converts YYYY-MM-DD into DD.MM.YYYY.
func (f Formatter) Date(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Date not set"
	}
	parts := strings.SplitN(value, "-", 3)
	if len(parts) != 3 {
		return value
	}
	return parts[2] + "." + parts[1] + "." + parts[0]
}

// Amount renders a locale-grouped amount with the currency symbol.
func (f Formatter) Amount(a *Amount) string {
	if a == nil {
		return "Amount not set"
	}
	f = f.ensure()
	return f.printer.Sprint(number.Decimal(a.Float(), number.MaxFractionDigits(3))) + " " + f.currency
}

// CreatedAt renders the creation timestamp in local time.
func (f Formatter) CreatedAt(c Contract) string {
	t := c.ParsedCreatedAt()
	if t.IsZero() {
		return "Not set"
	}
	return t.Local().Format(createdAtLayout)
}

// orDefault returns fallback for blank values.
func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
