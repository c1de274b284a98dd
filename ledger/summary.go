package ledger

import (
	"github.com/shopspring/decimal"
)

// CustomerBalance is the running sum of one customer's signed amounts.
type CustomerBalance struct {
	CustomerID string
	Balance    decimal.Decimal
}

// Summary is the aggregate of a set of entries. It is derived on demand and
// never stored.
type Summary struct {
	TotalCredits decimal.Decimal
	TotalDebits  decimal.Decimal
	NetBalance   decimal.Decimal

	// Customers holds one balance per customer in order of first appearance.
	Customers []CustomerBalance
}

// Summarize computes totals and per-customer balances in a single pass.
//
// Only credits and debits count towards the two totals. Transfers are left
// out of them but, like every other entry, add their signed amount to their
// customer's balance.
func Summarize(entries []Entry) Summary {
	s := Summary{
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
		NetBalance:   decimal.Zero,
		Customers:    make([]CustomerBalance, 0),
	}
	index := make(map[string]int)

	for _, e := range entries {
		switch e.Kind {
		case Credit:
			s.TotalCredits = s.TotalCredits.Add(e.Amount)
		case Debit:
			s.TotalDebits = s.TotalDebits.Add(e.Amount.Abs())
		}

		customer := e.Customer()
		i, ok := index[customer]
		if !ok {
			i = len(s.Customers)
			index[customer] = i
			s.Customers = append(s.Customers, CustomerBalance{CustomerID: customer, Balance: decimal.Zero})
		}
		s.Customers[i].Balance = s.Customers[i].Balance.Add(e.Amount)
	}

	s.NetBalance = s.TotalCredits.Sub(s.TotalDebits)
	return s
}

// IsEmpty reports whether the summary was built from no entries.
func (s Summary) IsEmpty() bool {
	return len(s.Customers) == 0
}

// BalanceOf returns the balance of customer and whether it appears at all.
func (s Summary) BalanceOf(customer string) (decimal.Decimal, bool) {
	for _, c := range s.Customers {
		if c.CustomerID == customer {
			return c.Balance, true
		}
	}
	return decimal.Zero, false
}

// Balances returns the per-customer balances as a map.
func (s Summary) Balances() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(s.Customers))
	for _, c := range s.Customers {
		m[c.CustomerID] = c.Balance
	}
	return m
}
