package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/report"
)

// Column widths of the transaction table. Wider values are not truncated.
const (
	IDWidth       = 5
	DateWidth     = 12
	CustomerWidth = 12
	AmountWidth   = 10
	TypeWidth     = 8

	// RuleWidth is the length of the line under the table header.
	RuleWidth = 60
)

// FormatTable writes entries as an aligned table with one row per entry.
func (f *Formatter) FormatTable(entries []ledger.Entry, w io.Writer) error {
	header := strings.Join([]string{
		runewidth.FillRight("ID", IDWidth),
		runewidth.FillRight("Date", DateWidth),
		runewidth.FillRight("Customer ID", CustomerWidth),
		runewidth.FillLeft("Amount", AmountWidth),
		runewidth.FillRight("Type", TypeWidth),
		"Description",
	}, " ")
	rule := strings.Repeat("-", RuleWidth)

	if f.Styles != nil {
		header = f.Styles.Keyword(header)
		rule = f.Styles.Dim(rule)
	}

	if _, err := fmt.Fprintf(w, "%s\n%s\n", header, rule); err != nil {
		return err
	}

	for _, e := range entries {
		customer := runewidth.FillRight(e.CustomerID, CustomerWidth)
		amount := runewidth.FillLeft(report.FormatAmount(e.Amount), AmountWidth)
		if f.Styles != nil {
			customer = f.Styles.Customer(customer)
			amount = f.Styles.Amount(amount, e.Amount)
		}

		row := strings.Join([]string{
			runewidth.FillRight(fmt.Sprint(e.ID), IDWidth),
			runewidth.FillRight(e.Date.String(), DateWidth),
			customer,
			amount,
			runewidth.FillRight(e.Kind.Title(), TypeWidth),
			e.Description,
		}, " ")

		if _, err := fmt.Fprintln(w, strings.TrimRight(row, " ")); err != nil {
			return err
		}
	}

	return nil
}

// FormatIndexed writes one line per entry prefixed with its position, for
// picking an entry to update or delete.
func (f *Formatter) FormatIndexed(entries []ledger.Entry, w io.Writer) error {
	for i, e := range entries {
		if _, err := fmt.Fprintf(w, "%d: ID=%d, Date=%s, Customer=%s, Amount=%s, Type=%s, Desc=%s\n",
			i, e.ID, e.Date, e.CustomerID, e.Amount.StringFixed(2), e.Kind, e.Description); err != nil {
			return err
		}
	}
	return nil
}
