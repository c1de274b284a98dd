// Package report renders ledger summaries as text or JSON.
//
// The text report has a fixed structure:
//
//	=== Financial Report ===
//	Total Credits: $1,200.00
//	Total Debits:  $340.50
//	Net Balance:   $859.50
//
//	=== Balance by Customer ===
//	C001: $859.50
//
// Customers appear in the order in which they first occur in the ledger.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finance/ledger"
)

const (
	// Title heads a written report.
	Title = "=== Financial Report ==="

	// SummaryTitle heads the summary printed in an interactive session.
	SummaryTitle = "=== Financial Summary ==="

	// CustomerTitle heads the per-customer balances.
	CustomerTitle = "=== Balance by Customer ==="
)

// amountFormatter groups thousands with commas and keeps two decimals. The
// currency symbol is added by FormatMoney so it precedes the sign.
var amountFormatter = money.NewFormatter(2, ".", ",", "", "1")

// FormatAmount formats d with two decimals and thousands separators, such as
// "-1,234.50".
func FormatAmount(d decimal.Decimal) string {
	cents := d.Round(2).Shift(2).BigInt()
	if cents.IsInt64() {
		return amountFormatter.Format(cents.Int64())
	}
	return groupDigits(d.StringFixed(2))
}

// groupDigits inserts thousands separators into a fixed point number for
// amounts beyond the int64 cents go-money works with.
func groupDigits(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	return sign + b.String() + "." + frac
}

// FormatMoney formats d as a dollar amount, such as "$-1,234.50".
func FormatMoney(d decimal.Decimal) string {
	return "$" + FormatAmount(d)
}

// Lines renders a summary under the given title.
func Lines(title string, s ledger.Summary) []string {
	lines := []string{
		title,
		fmt.Sprintf("Total Credits: %s", FormatMoney(s.TotalCredits)),
		fmt.Sprintf("Total Debits:  %s", FormatMoney(s.TotalDebits)),
		fmt.Sprintf("Net Balance:   %s", FormatMoney(s.NetBalance)),
		"",
		CustomerTitle,
	}

	for _, c := range s.Customers {
		lines = append(lines, fmt.Sprintf("%s: %s", c.CustomerID, FormatMoney(c.Balance)))
	}

	return lines
}

// Write writes the report for s to w.
func Write(w io.Writer, s ledger.Summary) error {
	_, err := io.WriteString(w, strings.Join(Lines(Title, s), "\n")+"\n")
	return err
}

// WriteFile overwrites filename with the report for s.
func WriteFile(filename string, s ledger.Summary) error {
	f, err := os.Create(filename)
	if err != nil {
		return &ledger.ResourceError{Op: "create", Path: filename, Err: err}
	}

	if err := Write(f, s); err != nil {
		_ = f.Close()
		return &ledger.ResourceError{Op: "write", Path: filename, Err: err}
	}

	if err := f.Close(); err != nil {
		return &ledger.ResourceError{Op: "write", Path: filename, Err: err}
	}

	return nil
}

// SummaryJSON is the JSON form of a summary. Amounts are strings with two
// decimals to avoid floating point rounding on the consumer side.
type SummaryJSON struct {
	TotalCredits string         `json:"total_credits"`
	TotalDebits  string         `json:"total_debits"`
	NetBalance   string         `json:"net_balance"`
	Customers    []CustomerJSON `json:"balance_by_customer"`
}

// CustomerJSON is one per-customer balance in JSON form.
type CustomerJSON struct {
	CustomerID string `json:"customer_id"`
	Balance    string `json:"balance"`
}

// ToJSON converts a summary to its JSON form.
func ToJSON(s ledger.Summary) SummaryJSON {
	out := SummaryJSON{
		TotalCredits: s.TotalCredits.StringFixed(2),
		TotalDebits:  s.TotalDebits.StringFixed(2),
		NetBalance:   s.NetBalance.StringFixed(2),
		Customers:    make([]CustomerJSON, 0, len(s.Customers)),
	}
	for _, c := range s.Customers {
		out.Customers = append(out.Customers, CustomerJSON{CustomerID: c.CustomerID, Balance: c.Balance.StringFixed(2)})
	}
	return out
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s ledger.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToJSON(s))
}
