// Large Transaction File Generator
//
// This tool generates a large transaction file for performance testing and profiling.
// It writes realistic rows, and optionally a share of malformed ones, to stress-test
// the loader's skip-and-continue handling.
//
// Usage:
//
//	go run main.go > large.csv
//	go run main.go 20000000 > large.csv      # Specify target size in bytes
//	go run main.go 20000000 0.01 > large.csv # One percent malformed rows
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/loader"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	customers = []string{
		"C001", "C002", "C003", "C004", "C005",
		"C006", "C007", "C008", "C009", "C010",
		"",
	}

	descriptions = []string{
		"Grocery shopping", "Fuel purchase", "Rent payment",
		"Salary deposit", "Utility bill", "Online purchase",
		"Restaurant dinner", "Coffee", "Monthly subscription",
		"Medical appointment", "Dividend payment", "Tax payment",
		"Insurance premium", "Gift, birthday", "Savings transfer",
	}

	// Values the loader rejects, one per validated column.
	malformed = []func(record []string){
		func(r []string) { r[1] = "2023-02-30" },
		func(r []string) { r[3] = "twelve" },
		func(r []string) { r[4] = "refund" },
	}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	invalidRatio := 0.0
	if len(os.Args) > 2 {
		if ratio, err := strconv.ParseFloat(os.Args[2], 64); err == nil {
			invalidRatio = ratio
		}
	}

	counter := &countingWriter{}
	w := csv.NewWriter(counter)
	if err := w.Write(loader.Header); err != nil {
		fatal(err)
	}

	currentDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	transactionCount, invalidCount := 0, 0

	for id := 1; counter.n < targetSize; id++ {
		record := generateRecord(id, currentDate)

		if invalidRatio > 0 && rand.Float64() < invalidRatio {
			malformed[rand.Intn(len(malformed))](record)
			invalidCount++
		} else {
			transactionCount++
		}

		if err := w.Write(record); err != nil {
			fatal(err)
		}

		// Several transactions per day on average.
		if rand.Intn(4) == 0 {
			currentDate = currentDate.AddDate(0, 0, 1)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		fatal(err)
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d transactions and %d malformed rows\n", counter.n, transactionCount, invalidCount)
}

func generateRecord(id int, date time.Time) []string {
	kind := ledger.Kinds[rand.Intn(len(ledger.Kinds))]
	amount := ledger.NormalizeAmount(kind, randAmount(5, 2500))

	return []string{
		strconv.Itoa(id),
		date.Format(ledger.DateLayout),
		customers[rand.Intn(len(customers))],
		amount.StringFixed(2),
		kind.String(),
		descriptions[rand.Intn(len(descriptions))],
	}
}

// randAmount returns an amount in cents precision between min and max.
// Transfers may be negative, like money moved out of an account.
func randAmount(min, max int64) decimal.Decimal {
	cents := min*100 + rand.Int63n((max-min)*100)
	if rand.Intn(3) == 0 {
		cents = -cents
	}
	return decimal.New(cents, -2)
}

// countingWriter writes to stdout and counts the bytes written.
type countingWriter struct {
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := os.Stdout.Write(p)
	c.n += n
	return n, err
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
