package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Field names an updatable attribute of an entry.
type Field int

const (
	FieldDate Field = iota
	FieldCustomer
	FieldAmount
	FieldKind
	FieldDescription
)

var fieldNames = [...]string{
	FieldDate:        "date",
	FieldCustomer:    "customer_id",
	FieldAmount:      "amount",
	FieldKind:        "type",
	FieldDescription: "description",
}

// Fields lists the updatable fields in prompt order.
func Fields() []Field {
	return []Field{FieldDate, FieldCustomer, FieldAmount, FieldKind, FieldDescription}
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// ParseField maps a field name such as "customer_id" to its Field.
func ParseField(s string) (Field, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range fieldNames {
		if n == name {
			return Field(f), nil
		}
	}
	return 0, &ValidationError{
		Field:  "field",
		Value:  s,
		Reason: "must be one of date, customer_id, amount, type, description",
	}
}

// Change is a single-field modification applied by Ledger.Update.
// The set of implementations is closed: SetDate, SetCustomer, SetAmount,
// SetKind and SetDescription.
type Change interface {
	Field() Field
	change()
}

type SetDate struct{ Date Date }

type SetCustomer struct{ CustomerID string }

// SetAmount replaces the amount, normalizing its sign by the entry's current kind.
type SetAmount struct{ Amount decimal.Decimal }

type SetKind struct{ Kind Kind }

type SetDescription struct{ Description string }

func (SetDate) Field() Field        { return FieldDate }
func (SetCustomer) Field() Field    { return FieldCustomer }
func (SetAmount) Field() Field      { return FieldAmount }
func (SetKind) Field() Field        { return FieldKind }
func (SetDescription) Field() Field { return FieldDescription }

func (SetDate) change()        {}
func (SetCustomer) change()    {}
func (SetAmount) change()      {}
func (SetKind) change()        {}
func (SetDescription) change() {}

// ParseChange builds the Change for a field name and the raw new value,
// parsing the value with the rules of that field.
func ParseChange(field, value string) (Change, error) {
	f, err := ParseField(field)
	if err != nil {
		return nil, err
	}
	return f.Parse(value)
}

// Parse converts raw text into a Change for f.
func (f Field) Parse(value string) (Change, error) {
	switch f {
	case FieldDate:
		d, err := ParseDate(value)
		if err != nil {
			return nil, err
		}
		return SetDate{Date: d}, nil
	case FieldCustomer:
		return SetCustomer{CustomerID: strings.TrimSpace(value)}, nil
	case FieldAmount:
		a, err := ParseAmount(value)
		if err != nil {
			return nil, err
		}
		return SetAmount{Amount: a}, nil
	case FieldKind:
		k, err := ParseKind(value)
		if err != nil {
			return nil, err
		}
		return SetKind{Kind: k}, nil
	case FieldDescription:
		return SetDescription{Description: strings.TrimSpace(value)}, nil
	}
	return nil, &ValidationError{Field: "field", Value: f.String(), Reason: "not updatable"}
}

// apply returns a copy of e with the change applied. Amounts are
// re-normalized so the sign rule of the resulting kind holds.
func apply(e Entry, c Change) (Entry, error) {
	switch c := c.(type) {
	case SetDate:
		if c.Date.IsZero() {
			return e, &ValidationError{Field: FieldDate.String(), Reason: "date is required"}
		}
		e.Date = c.Date
	case SetCustomer:
		e.CustomerID = c.CustomerID
		e.CustomerID = e.Customer()
	case SetAmount:
		e.Amount = NormalizeAmount(e.Kind, c.Amount)
	case SetKind:
		if !c.Kind.Valid() {
			return e, &ValidationError{Field: FieldKind.String(), Value: string(c.Kind), Reason: "must be 'credit', 'debit', or 'transfer'"}
		}
		e.Kind = c.Kind
		e.Amount = NormalizeAmount(e.Kind, e.Amount)
	case SetDescription:
		e.Description = c.Description
	default:
		return e, &ValidationError{Field: "field", Reason: "unsupported change"}
	}
	return e, nil
}
