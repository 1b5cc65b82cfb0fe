package cli

import (
	"fmt"
	"time"

	"github.com/odyssey-erp/stockroom/internal/masterdata"
	"github.com/odyssey-erp/stockroom/internal/report"
)

const dateLayout = "2006-01-02"

func reportCommands() map[string]command {
	return map[string]command{
		"report summary":      {usage: "", run: runReportSummary},
		"report top-quantity": {usage: "[-n N]", run: topCommand(report.TopByQuantity)},
		"report top-value":    {usage: "[-n N]", run: topCommand(report.TopByValue)},
		"report low-stock":    {usage: "", run: runProductsLowStock},
		"report range":        {usage: "-from YYYY-MM-DD -to YYYY-MM-DD [-count]", run: runReportRange},
	}
}

func runReportSummary(e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	s := report.Summarize(e.services.Catalog.Products(), e.services.Catalog.Suppliers(), e.services.Inventory.Transactions())
	tw := newTable(e.stdout, "METRIC", "VALUE")
	fmt.Fprintf(tw, "Products\t%d\n", s.Products)
	fmt.Fprintf(tw, "Suppliers\t%d\n", s.Suppliers)
	fmt.Fprintf(tw, "Transactions\t%d\n", s.Transactions)
	fmt.Fprintf(tw, "Units in stock\t%d\n", s.TotalUnits)
	fmt.Fprintf(tw, "Stock value\t%.2f\n", s.TotalValue)
	fmt.Fprintf(tw, "Low stock products\t%d\n", s.LowStockCount)
	return tw.Flush()
}

func topCommand(rank func([]masterdata.Product, int) []masterdata.Product) func(e *env, args []string) error {
	return func(e *env, args []string) error {
		fs := newFlags(e, "report top")
		n := fs.Int("n", 5, "number of products")
		if err := parse(fs, args); err != nil {
			return err
		}
		return writeProducts(e.stdout, rank(e.services.Catalog.Products(), *n))
	}
}

func runReportRange(e *env, args []string) error {
	fs := newFlags(e, "report range")
	from := fs.String("from", "", "first day, inclusive")
	to := fs.String("to", "", "last day, inclusive")
	countOnly := fs.Bool("count", false, "print only the number of transactions")
	if err := parse(fs, args); err != nil {
		return err
	}
	for _, d := range []string{*from, *to} {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return errUsage
		}
	}
	entries := e.services.Inventory.Transactions()
	if *countOnly {
		fmt.Fprintf(e.stdout, "%d transactions between %s and %s\n", report.CountInRange(entries, *from, *to), *from, *to)
		return nil
	}
	return writeTransactions(e.stdout, report.TransactionsInRange(entries, *from, *to))
}
