// Package ledger holds the in-memory transaction ledger of a finance session and
// the aggregation over it.
//
// A Ledger is an ordered sequence of entries. Entries are addressed by their
// position for updates and deletes, and carry a unique id assigned on insert.
// Every mutation validates first and only then changes state, so a failed
// operation leaves the ledger as it was.
//
// Amount signs follow the entry kind: debits are negative, credits positive and
// transfers keep the sign they were given.
//
// Example usage:
//
//	l := ledger.New()
//	entry, err := l.Add(ledger.Draft{
//	    Date:       "2024-01-15",
//	    CustomerID: "C001",
//	    Amount:     "40",
//	    Kind:       "debit",
//	})
//	if err != nil {
//	    // *ledger.ParseError or *ledger.ValidationError
//	}
//	summary := l.Summary()
package ledger

import (
	"golang.org/x/exp/slices"
)

// Ledger is the ordered in-memory collection of entries owned by a session.
// It is not safe for concurrent use.
type Ledger struct {
	entries []Entry
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{entries: make([]Entry, 0)}
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in ledger order.
func (l *Ledger) Entries() []Entry {
	return slices.Clone(l.entries)
}

// At returns the entry at index.
func (l *Ledger) At(index int) (Entry, error) {
	if err := l.checkIndex(index); err != nil {
		return Entry{}, err
	}
	return l.entries[index], nil
}

// NextID returns the id the next inserted entry receives.
func (l *Ledger) NextID() int {
	maxID := 0
	for _, e := range l.entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

// Add parses a draft and appends the resulting entry.
func (l *Ledger) Add(d Draft) (Entry, error) {
	e, err := d.Parse()
	if err != nil {
		return Entry{}, err
	}
	return l.Append(e), nil
}

// Append inserts an already parsed entry at the end of the ledger. The id is
// always reassigned, the amount is normalized by kind and an empty customer
// becomes UnknownCustomer.
func (l *Ledger) Append(e Entry) Entry {
	e.ID = l.NextID()
	e.Amount = NormalizeAmount(e.Kind, e.Amount)
	e.CustomerID = e.Customer()
	l.entries = append(l.entries, e)
	return e
}

// Replace swaps the whole content of the ledger, as done when a file is loaded.
// Entries keep their id when it is positive and not already taken; the others
// receive the next free id in order.
func (l *Ledger) Replace(entries []Entry) {
	next := make([]Entry, 0, len(entries))
	seen := make(map[int]bool, len(entries))
	maxID := 0
	for _, e := range entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}

	for _, e := range entries {
		if e.ID <= 0 || seen[e.ID] {
			maxID++
			e.ID = maxID
		}
		seen[e.ID] = true
		e.Amount = NormalizeAmount(e.Kind, e.Amount)
		e.CustomerID = e.Customer()
		next = append(next, e)
	}

	l.entries = next
}

// Update applies change to the entry at index. The entry keeps its id and
// position.
func (l *Ledger) Update(index int, change Change) (Entry, error) {
	if err := l.checkIndex(index); err != nil {
		return Entry{}, err
	}
	if change == nil {
		return Entry{}, &ValidationError{Field: "field", Reason: "no change given"}
	}

	updated, err := apply(l.entries[index], change)
	if err != nil {
		return Entry{}, err
	}
	l.entries[index] = updated
	return updated, nil
}

// Preview returns the entry a subsequent Delete at the same index removes.
// It is the first half of the confirm-then-delete exchange.
func (l *Ledger) Preview(index int) (Entry, error) {
	return l.At(index)
}

// Delete removes the entry at index and returns it. Later entries shift down
// by one, so indices obtained before the call are stale afterwards.
func (l *Ledger) Delete(index int) (Entry, error) {
	if err := l.checkIndex(index); err != nil {
		return Entry{}, err
	}
	removed := l.entries[index]
	l.entries = slices.Delete(l.entries, index, index+1)
	return removed, nil
}

// Summary aggregates the current entries.
func (l *Ledger) Summary() Summary {
	return Summarize(l.entries)
}

func (l *Ledger) checkIndex(index int) error {
	if index < 0 || index >= len(l.entries) {
		return &IndexError{Index: index, Length: len(l.entries)}
	}
	return nil
}
