package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/odyssey-erp/stockroom/internal/inventory"
	"github.com/odyssey-erp/stockroom/internal/shared"
)

// RecentLimit is the default number of entries shown by stock recent.
const RecentLimit = 20

func stockCommands() map[string]command {
	return map[string]command{
		"stock in":      {staff: true, usage: "-product N -quantity N [-notes S]", run: movementCommand(inventory.TransactionTypeIn)},
		"stock out":     {staff: true, usage: "-product N -quantity N [-notes S]", run: movementCommand(inventory.TransactionTypeOut)},
		"stock history": {staff: true, usage: "-product N [-limit N]", run: runStockHistory},
		"stock recent":  {staff: true, usage: "[-limit N]", run: runStockRecent},
	}
}

// LowStockPrinter writes a marker line for every low stock event.
func LowStockPrinter(w io.Writer) inventory.LowStockHandler {
	return inventory.LowStockHandlerFunc(func(_ context.Context, evt inventory.LowStockEvent) error {
		_, err := fmt.Fprintf(w, "WARNING: low stock for product %d (%s): %d left, reorder level %d\n",
			evt.ProductID, evt.Name, evt.Quantity, evt.ReorderLevel)
		return err
	})
}

func movementCommand(kind inventory.TransactionType) func(e *env, args []string) error {
	return func(e *env, args []string) error {
		fs := newFlags(e, "stock")
		var input inventory.MovementInput
		fs.Int64Var(&input.ProductID, "product", 0, "product id")
		fs.IntVar(&input.Quantity, "quantity", 0, "units to move")
		fs.StringVar(&input.Notes, "notes", "", "free-form notes")
		if err := parse(fs, args); err != nil {
			return err
		}
		if input.ProductID <= 0 || fs.NArg() != 0 {
			return errUsage
		}
		post := e.services.Inventory.StockIn
		if kind == inventory.TransactionTypeOut {
			post = e.services.Inventory.StockOut
		}
		mv, err := post(e.ctx, input)
		if err != nil {
			if errors.Is(err, shared.ErrIOFailure) && mv.Transaction.ID != 0 {
				fmt.Fprintf(e.stderr, "warning: transaction %d recorded but not saved\n", mv.Transaction.ID)
			}
			return err
		}
		fmt.Fprintf(e.stdout, "Transaction %d recorded. New quantity: %d\n", mv.Transaction.ID, mv.Product.QuantityInStock)
		return nil
	}
}

func runStockHistory(e *env, args []string) error {
	fs := newFlags(e, "stock history")
	productID := fs.Int64("product", 0, "product id")
	limit := fs.Int("limit", 0, "latest entries to show, 0 for all")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *productID <= 0 {
		return errUsage
	}
	return writeTransactions(e.stdout, e.services.Inventory.History(*productID, *limit))
}

func runStockRecent(e *env, args []string) error {
	fs := newFlags(e, "stock recent")
	limit := fs.Int("limit", RecentLimit, "entries to show")
	if err := parse(fs, args); err != nil {
		return err
	}
	return writeTransactions(e.stdout, e.services.Inventory.Recent(*limit))
}

func writeTransactions(w io.Writer, entries []inventory.Transaction) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No transactions found.")
		return nil
	}
	tw := newTable(w, "ID", "PRODUCT", "TYPE", "QTY", "DATE", "NOTES")
	for _, t := range entries {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%s\t%s\n", t.ID, t.ProductID, t.Type, t.Quantity, t.Timestamp, t.Notes)
	}
	return tw.Flush()
}
