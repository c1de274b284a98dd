package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func entry(kind Kind, customer string, amount string) Entry {
	return Entry{
		Date:       NewDate(2024, 1, 1),
		CustomerID: customer,
		Kind:       kind,
		Amount:     NormalizeAmount(kind, decimal.RequireFromString(amount)),
	}
}

func balancesAsStrings(s Summary) map[string]string {
	out := make(map[string]string)
	for customer, balance := range s.Balances() {
		out[customer] = balance.StringFixed(2)
	}
	return out
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		entries  []Entry
		credits  string
		debits   string
		net      string
		balances map[string]string
		order    []string
	}{
		{
			name:     "empty",
			credits:  "0.00",
			debits:   "0.00",
			net:      "0.00",
			balances: map[string]string{},
			order:    []string{},
		},
		{
			name: "credit debit and transfer",
			entries: []Entry{
				entry(Credit, "A", "100.00"),
				entry(Debit, "A", "40.00"),
				entry(Transfer, "B", "25.00"),
			},
			credits:  "100.00",
			debits:   "40.00",
			net:      "60.00",
			balances: map[string]string{"A": "60.00", "B": "25.00"},
			order:    []string{"A", "B"},
		},
		{
			name: "negative transfer reduces the customer balance only",
			entries: []Entry{
				entry(Transfer, "B", "-30"),
				entry(Credit, "A", "10"),
			},
			credits:  "10.00",
			debits:   "0.00",
			net:      "10.00",
			balances: map[string]string{"A": "10.00", "B": "-30.00"},
			order:    []string{"B", "A"},
		},
		{
			name: "missing customer is grouped as Unknown",
			entries: []Entry{
				entry(Debit, "", "12.5"),
				entry(Debit, "  ", "2.5"),
			},
			credits:  "0.00",
			debits:   "15.00",
			net:      "-15.00",
			balances: map[string]string{UnknownCustomer: "-15.00"},
			order:    []string{UnknownCustomer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.entries)
			assert.Equal(t, tt.credits, s.TotalCredits.StringFixed(2))
			assert.Equal(t, tt.debits, s.TotalDebits.StringFixed(2))
			assert.Equal(t, tt.net, s.NetBalance.StringFixed(2))
			assert.Equal(t, tt.balances, balancesAsStrings(s))

			order := make([]string, 0, len(s.Customers))
			for _, c := range s.Customers {
				order = append(order, c.CustomerID)
			}
			assert.Equal(t, tt.order, order)
			assert.True(t, s.NetBalance.Equal(s.TotalCredits.Sub(s.TotalDebits)))
		})
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	entries := []Entry{
		entry(Credit, "A", "100.10"),
		entry(Debit, "B", "40.05"),
		entry(Transfer, "A", "-7"),
		entry(Credit, "C", "0.01"),
		entry(Debit, "A", "3.33"),
	}
	want := Summarize(entries)

	permutations := [][]int{
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{1, 2, 3, 4, 0},
	}
	for _, p := range permutations {
		shuffled := make([]Entry, 0, len(entries))
		for _, i := range p {
			shuffled = append(shuffled, entries[i])
		}
		got := Summarize(shuffled)
		assert.True(t, want.TotalCredits.Equal(got.TotalCredits))
		assert.True(t, want.TotalDebits.Equal(got.TotalDebits))
		assert.True(t, want.NetBalance.Equal(got.NetBalance))
		assert.Equal(t, balancesAsStrings(want), balancesAsStrings(got))
	}
}

func TestSummary_BalanceOf(t *testing.T) {
	l := New()
	_, err := l.Add(Draft{Date: "2024-01-01", CustomerID: "A", Amount: "5", Kind: "credit"})
	assert.NoError(t, err)

	s := l.Summary()
	assert.False(t, s.IsEmpty())

	balance, ok := s.BalanceOf("A")
	assert.True(t, ok)
	assert.Equal(t, "5.00", balance.StringFixed(2))

	_, ok = s.BalanceOf("Z")
	assert.False(t, ok)
}
