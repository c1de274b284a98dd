package ledger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestParseKind(t *testing.T) {
	for input, want := range map[string]Kind{
		"credit":     Credit,
		"DEBIT":      Debit,
		" Transfer ": Transfer,
	} {
		got, err := ParseKind(input)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "must be 'credit', 'debit', or 'transfer'")
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	assert.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	for _, bad := range []string{"2023-02-29", "2024/01/01", "", "yesterday"} {
		_, err := ParseDate(bad)
		var perr *ParseError
		assert.True(t, errors.As(err, &perr), "expected parse error for %q", bad)
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		kind   Kind
		amount string
		want   string
	}{
		{Credit, "12.5", "12.50"},
		{Credit, "-12.5", "12.50"},
		{Debit, "12.5", "-12.50"},
		{Debit, "-12.5", "-12.50"},
		{Transfer, "12.5", "12.50"},
		{Transfer, "-12.5", "-12.50"},
	}
	for _, tt := range tests {
		got := NormalizeAmount(tt.kind, decimal.RequireFromString(tt.amount))
		assert.Equal(t, tt.want, got.StringFixed(2), "%s %s", tt.kind, tt.amount)
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, err := ParseField(f.String())
		assert.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseField("transaction_id")
	assert.Error(t, err)
}

func TestKindTitle(t *testing.T) {
	assert.Equal(t, "Credit", Credit.Title())
	assert.Equal(t, "Transfer", Transfer.Title())
	assert.Equal(t, "", Kind("").Title())
}
