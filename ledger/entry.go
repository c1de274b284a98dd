package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the on-disk and on-screen layout of entry dates.
const DateLayout = "2006-01-02"

// UnknownCustomer is recorded for entries that carry no customer id.
const UnknownCustomer = "Unknown"

// Kind is the transaction category of an entry.
type Kind string

const (
	Credit   Kind = "credit"
	Debit    Kind = "debit"
	Transfer Kind = "transfer"
)

// Kinds lists the accepted kinds in display order.
var Kinds = []Kind{Credit, Debit, Transfer}

// ParseKind accepts a kind name in any case and returns it normalized to lower case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", &ValidationError{
			Field:  FieldKind.String(),
			Value:  s,
			Reason: "must be 'credit', 'debit', or 'transfer'",
		}
	}
	return k, nil
}

// Valid reports whether k is one of credit, debit or transfer.
func (k Kind) Valid() bool {
	switch k {
	case Credit, Debit, Transfer:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// Title returns the kind with its first letter upper-cased, as shown in tables.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Date is a calendar date without a time component.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &ParseError{Field: FieldDate.String(), Value: s, Err: err}
	}
	return Date{Time: t}, nil
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// ParseAmount parses a decimal amount such as "12.50" or "-3".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &ParseError{Field: FieldAmount.String(), Value: s, Err: err}
	}
	return d, nil
}

// NormalizeAmount applies the sign rule of kind: debits are stored negative,
// credits positive, and transfers keep the sign they were given.
func NormalizeAmount(kind Kind, amount decimal.Decimal) decimal.Decimal {
	switch kind {
	case Debit:
		return amount.Abs().Neg()
	case Credit:
		return amount.Abs()
	}
	return amount
}

// Entry is one transaction record of the ledger.
type Entry struct {
	ID          int
	Date        Date
	CustomerID  string
	Amount      decimal.Decimal
	Kind        Kind
	Description string
}

func (e Entry) String() string {
	return fmt.Sprintf("ID=%d, Date=%s, Customer=%s, Amount=%s, Type=%s, Desc=%s",
		e.ID, e.Date, e.CustomerID, e.Amount.StringFixed(2), e.Kind, e.Description)
}

// Customer returns the customer id, or UnknownCustomer when it is empty.
func (e Entry) Customer() string {
	if c := strings.TrimSpace(e.CustomerID); c != "" {
		return c
	}
	return UnknownCustomer
}

// Draft holds the raw text of a new entry as typed by a user.
type Draft struct {
	Date        string
	CustomerID  string
	Amount      string
	Kind        string
	Description string
}

// Parse validates the draft and returns the entry it describes, without an id.
// Fields are checked in input order so the first problem is reported.
func (d Draft) Parse() (Entry, error) {
	date, err := ParseDate(d.Date)
	if err != nil {
		return Entry{}, err
	}

	amount, err := ParseAmount(d.Amount)
	if err != nil {
		return Entry{}, err
	}

	kind, err := ParseKind(d.Kind)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Date:        date,
		CustomerID:  strings.TrimSpace(d.CustomerID),
		Amount:      amount,
		Kind:        kind,
		Description: strings.TrimSpace(d.Description),
	}, nil
}
