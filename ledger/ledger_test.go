package ledger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func draft(date, customer, amount, kind string) Draft {
	return Draft{Date: date, CustomerID: customer, Amount: amount, Kind: kind}
}

func TestLedger_Add(t *testing.T) {
	tests := []struct {
		name      string
		draft     Draft
		wantErr   bool
		checkFunc func(*testing.T, Entry, error)
	}{
		{
			name:  "credit is stored positive",
			draft: draft("2024-01-15", "C001", "-100", "credit"),
			checkFunc: func(t *testing.T, e Entry, _ error) {
				assert.Equal(t, "100.00", e.Amount.StringFixed(2))
				assert.Equal(t, Credit, e.Kind)
			},
		},
		{
			name:  "debit is stored negative",
			draft: draft("2024-01-15", "C001", "40", "debit"),
			checkFunc: func(t *testing.T, e Entry, _ error) {
				assert.Equal(t, "-40.00", e.Amount.StringFixed(2))
			},
		},
		{
			name:  "transfer keeps the given sign",
			draft: draft("2024-01-15", "C002", "-25.5", "transfer"),
			checkFunc: func(t *testing.T, e Entry, _ error) {
				assert.Equal(t, "-25.50", e.Amount.StringFixed(2))
			},
		},
		{
			name:  "kind is case-insensitive",
			draft: draft("2024-01-15", "C001", "10", "  DeBiT "),
			checkFunc: func(t *testing.T, e Entry, _ error) {
				assert.Equal(t, Debit, e.Kind)
				assert.Equal(t, "-10.00", e.Amount.StringFixed(2))
			},
		},
		{
			name:  "empty customer becomes Unknown",
			draft: draft("2024-01-15", "", "10", "credit"),
			checkFunc: func(t *testing.T, e Entry, _ error) {
				assert.Equal(t, UnknownCustomer, e.CustomerID)
			},
		},
		{
			name:    "error: bad date",
			draft:   draft("15/01/2024", "C001", "10", "credit"),
			wantErr: true,
			checkFunc: func(t *testing.T, _ Entry, err error) {
				var perr *ParseError
				assert.True(t, errors.As(err, &perr))
				assert.Equal(t, "date", perr.Field)
			},
		},
		{
			name:    "error: non-numeric amount",
			draft:   draft("2024-01-15", "C001", "ten", "credit"),
			wantErr: true,
			checkFunc: func(t *testing.T, _ Entry, err error) {
				var perr *ParseError
				assert.True(t, errors.As(err, &perr))
				assert.Equal(t, "amount", perr.Field)
			},
		},
		{
			name:    "error: unknown kind",
			draft:   draft("2024-01-15", "C001", "10", "refund"),
			wantErr: true,
			checkFunc: func(t *testing.T, _ Entry, err error) {
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr))
				assert.Equal(t, "type", verr.Field)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			e, err := l.Add(tt.draft)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 0, l.Len())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, l.Len())
			}
			if tt.checkFunc != nil {
				tt.checkFunc(t, e, err)
			}
		})
	}
}

func TestLedger_AddAssignsIDs(t *testing.T) {
	l := New()

	first, err := l.Add(draft("2024-01-01", "A", "1", "credit"))
	assert.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := l.Add(draft("2024-01-02", "A", "1", "credit"))
	assert.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	// Ids follow the maximum, not the length.
	l.Replace([]Entry{
		{ID: 7, Date: NewDate(2024, 1, 1), Kind: Credit, Amount: decimal.NewFromInt(1)},
		{ID: 3, Date: NewDate(2024, 1, 1), Kind: Credit, Amount: decimal.NewFromInt(1)},
	})
	third, err := l.Add(draft("2024-01-03", "A", "1", "credit"))
	assert.NoError(t, err)
	assert.Equal(t, 8, third.ID)

	_, err = l.Delete(2)
	assert.NoError(t, err)
	_, err = l.Delete(0)
	assert.NoError(t, err)
	fourth, err := l.Add(draft("2024-01-04", "A", "1", "credit"))
	assert.NoError(t, err)
	assert.Equal(t, 4, fourth.ID)
}

func TestLedger_Replace(t *testing.T) {
	l := New()
	_, err := l.Add(draft("2024-01-01", "old", "1", "credit"))
	assert.NoError(t, err)

	l.Replace([]Entry{
		{Date: NewDate(2024, 2, 1), Kind: Debit, Amount: decimal.NewFromInt(5)},
		{ID: 2, Date: NewDate(2024, 2, 2), Kind: Credit, Amount: decimal.NewFromInt(-6), CustomerID: "B"},
		{ID: 2, Date: NewDate(2024, 2, 3), Kind: Transfer, Amount: decimal.NewFromInt(-7), CustomerID: "B"},
	})

	entries := l.Entries()
	assert.Equal(t, 3, len(entries))

	assert.Equal(t, 3, entries[0].ID)
	assert.Equal(t, UnknownCustomer, entries[0].CustomerID)
	assert.Equal(t, "-5.00", entries[0].Amount.StringFixed(2))

	assert.Equal(t, 2, entries[1].ID)
	assert.Equal(t, "6.00", entries[1].Amount.StringFixed(2))

	assert.Equal(t, 4, entries[2].ID)
	assert.Equal(t, "-7.00", entries[2].Amount.StringFixed(2))
}

func TestLedger_Update(t *testing.T) {
	tests := []struct {
		name      string
		kind      string
		amount    string
		field     string
		value     string
		wantErr   bool
		checkFunc func(*testing.T, Entry, error)
	}{
		{
			name: "credit to debit negates the amount",
			kind: "credit", amount: "50.00",
			field: "type", value: "debit",
			checkFunc: func(t *testing.T, e Entry, _ error) {
				assert.Equal(t, Debit, e.Kind)
				assert.Equal(t, "-50.00", e.Amount.StringFixed(2))
			},
		},
		{
			name: "debit to credit makes the amount positive",
			kind: "debit", amount: "50.00",
			field: "type", value: "CREDIT",
			checkFunc: func(t *testing.T, e Entry, _ error) {
				assert.Equal(t, "50.00", e.Amount.StringFixed(2))
			},
		},
		{
			name: "debit to transfer keeps the stored sign",
			kind: "debit", amount: "50.00",
			field: "type", value: "transfer",
			checkFunc: func(t *testing.T, e Entry, _ error) {
				assert.Equal(t, Transfer, e.Kind)
				assert.Equal(t, "-50.00", e.Amount.StringFixed(2))
			},
		},
		{
			name: "amount follows the kind of the entry",
			kind: "debit", amount: "10",
			field: "amount", value: "75.25",
			checkFunc: func(t *testing.T, e Entry, _ error) {
				assert.Equal(t, "-75.25", e.Amount.StringFixed(2))
			},
		},
		{
			name: "date",
			kind: "credit", amount: "10",
			field: "date", value: "2023-12-31",
			checkFunc: func(t *testing.T, e Entry, _ error) {
				assert.Equal(t, "2023-12-31", e.Date.String())
			},
		},
		{
			name: "customer",
			kind: "credit", amount: "10",
			field: "Customer_ID", value: " C042 ",
			checkFunc: func(t *testing.T, e Entry, _ error) {
				assert.Equal(t, "C042", e.CustomerID)
			},
		},
		{
			name: "description",
			kind: "credit", amount: "10",
			field: "description", value: "Salary",
			checkFunc: func(t *testing.T, e Entry, _ error) {
				assert.Equal(t, "Salary", e.Description)
			},
		},
		{
			name: "error: unknown field",
			kind: "credit", amount: "10",
			field: "id", value: "3",
			wantErr: true,
			checkFunc: func(t *testing.T, _ Entry, err error) {
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr))
			},
		},
		{
			name: "error: bad kind",
			kind: "credit", amount: "10",
			field: "type", value: "loan",
			wantErr: true,
		},
		{
			name: "error: bad amount",
			kind: "credit", amount: "10",
			field: "amount", value: "1,000",
			wantErr: true,
			checkFunc: func(t *testing.T, _ Entry, err error) {
				var perr *ParseError
				assert.True(t, errors.As(err, &perr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			original, err := l.Add(draft("2024-01-15", "C001", tt.amount, tt.kind))
			assert.NoError(t, err)

			var updated Entry
			change, err := ParseChange(tt.field, tt.value)
			if err == nil {
				updated, err = l.Update(0, change)
			}

			current, _ := l.At(0)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, original, current)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, original.ID, updated.ID)
				assert.Equal(t, updated, current)
			}
			if tt.checkFunc != nil {
				tt.checkFunc(t, updated, err)
			}
		})
	}
}

func TestLedger_UpdateIndexOutOfRange(t *testing.T) {
	l := New()
	_, err := l.Add(draft("2024-01-15", "C001", "10", "credit"))
	assert.NoError(t, err)

	for _, index := range []int{-1, 1, 5} {
		_, err := l.Update(index, SetDescription{Description: "x"})
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))

		var ierr *IndexError
		assert.True(t, errors.As(err, &ierr))
		assert.Equal(t, index, ierr.Index)
	}
}

func TestLedger_Delete(t *testing.T) {
	l := New()
	for _, c := range []string{"A", "B", "C"} {
		_, err := l.Add(draft("2024-01-15", c, "10", "credit"))
		assert.NoError(t, err)
	}

	t.Run("preview does not remove", func(t *testing.T) {
		e, err := l.Preview(1)
		assert.NoError(t, err)
		assert.Equal(t, "B", e.CustomerID)
		assert.Equal(t, 3, l.Len())
	})

	t.Run("out of range leaves the ledger unchanged", func(t *testing.T) {
		_, err := l.Delete(3)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
		_, err = l.Delete(-1)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
		_, err = l.Preview(3)
		assert.Error(t, err)
		assert.Equal(t, 3, l.Len())
	})

	t.Run("delete shifts later entries", func(t *testing.T) {
		removed, err := l.Delete(1)
		assert.NoError(t, err)
		assert.Equal(t, "B", removed.CustomerID)
		assert.Equal(t, 2, l.Len())

		e, err := l.At(1)
		assert.NoError(t, err)
		assert.Equal(t, "C", e.CustomerID)
		assert.Equal(t, 3, e.ID)
	})
}

func TestLedger_EntriesIsACopy(t *testing.T) {
	l := New()
	_, err := l.Add(draft("2024-01-15", "A", "10", "credit"))
	assert.NoError(t, err)

	entries := l.Entries()
	entries[0].CustomerID = "changed"

	e, _ := l.At(0)
	assert.Equal(t, "A", e.CustomerID)
}

func TestLedger_SignInvariant(t *testing.T) {
	l := New()
	inputs := []Draft{
		draft("2024-01-01", "A", "-10", "credit"),
		draft("2024-01-02", "A", "-10", "debit"),
		draft("2024-01-03", "A", "10", "debit"),
		draft("2024-01-04", "B", "-3", "transfer"),
		draft("2024-01-05", "B", "0", "credit"),
	}
	for _, d := range inputs {
		_, err := l.Add(d)
		assert.NoError(t, err)
	}

	for i := range l.Entries() {
		_, err := l.Update(i, SetKind{Kind: Kinds[i%len(Kinds)]})
		assert.NoError(t, err)
	}
	_, err := l.Update(0, SetAmount{Amount: decimal.NewFromInt(-99)})
	assert.NoError(t, err)

	for _, e := range l.Entries() {
		switch e.Kind {
		case Debit:
			assert.True(t, e.Amount.LessThanOrEqual(decimal.Zero), "debit %s must not be positive", e.Amount)
		case Credit:
			assert.True(t, e.Amount.GreaterThanOrEqual(decimal.Zero), "credit %s must not be negative", e.Amount)
		}
	}
}

func TestSetAmountUsesCurrentKind(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"credit", "30.00"},
		{"debit", "-30.00"},
		{"transfer", "-30.00"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			l := New()
			_, err := l.Add(Draft{Date: "2024-01-15", CustomerID: "A", Amount: "5", Kind: tt.kind})
			assert.NoError(t, err)

			e, err := l.Update(0, SetAmount{Amount: decimal.NewFromInt(-30)})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, e.Amount.StringFixed(2))
		})
	}
}
