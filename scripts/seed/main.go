package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/odyssey-erp/stockroom/internal/app"
	"github.com/odyssey-erp/stockroom/internal/inventory"
	"github.com/odyssey-erp/stockroom/internal/masterdata"
	"github.com/odyssey-erp/stockroom/internal/shared"
)

func main() {
	_ = godotenv.Load()
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	ctx := context.Background()

	logger := app.NewLogger(cfg)
	state := app.NewState(cfg, nil, logger)
	if _, err := state.Load(ctx); err != nil {
		log.Fatalf("load data: %v", err)
	}
	services := app.NewServices(app.ServicesParams{Config: cfg, State: state, Logger: logger})

	fmt.Println("→ Seeding users...")
	if _, err := services.Users.SeedDefaults(ctx); err != nil {
		log.Fatalf("seed users: %v", err)
	}

	fmt.Println("→ Seeding suppliers...")
	if err := seedSuppliers(ctx, services.Catalog); err != nil {
		log.Fatalf("seed suppliers: %v", err)
	}

	fmt.Println("→ Seeding products...")
	if err := seedProducts(ctx, services.Catalog); err != nil {
		log.Fatalf("seed products: %v", err)
	}

	fmt.Println("→ Seeding stock movements...")
	if err := seedMovements(ctx, services.Inventory); err != nil {
		log.Fatalf("seed movements: %v", err)
	}

	fmt.Println("✓ Seed complete")
	logger.Info("seed complete",
		slog.Int("suppliers", state.Suppliers.Count()),
		slog.Int("products", state.Products.Count()),
		slog.Int("transactions", state.Ledger.Count()))
}

// skipExisting makes re-running the seed a no-op for records already present.
func skipExisting(err error) error {
	if errors.Is(err, shared.ErrDuplicateID) {
		return nil
	}
	return err
}

func seedSuppliers(ctx context.Context, catalog *masterdata.Service) error {
	suppliers := []masterdata.Supplier{
		{ID: 1, Name: "Northwind Hardware", ContactNumber: "+1 (555) 010-2030", Email: "orders@northwind.example", Address: "12 Harbour Rd"},
		{ID: 2, Name: "Blue Ridge Electrical", ContactNumber: "555-019-8877", Email: "sales@blueridge.example", Address: "4 Mill Lane"},
		{ID: 3, Name: "Corner Paper Co", Address: "88 Station St"},
	}
	for _, s := range suppliers {
		if _, err := catalog.AddSupplier(ctx, s); skipExisting(err) != nil {
			return err
		}
	}
	return nil
}

func seedProducts(ctx context.Context, catalog *masterdata.Service) error {
	products := []masterdata.Product{
		{ID: 1, Name: "Hex Bolt M8", Category: "Fasteners", Description: "Zinc plated, box of 100", QuantityInStock: 40, ReorderLevel: 10, UnitPrice: 6.5, SupplierID: 1},
		{ID: 2, Name: "Wood Screw 4x40", Category: "Fasteners", QuantityInStock: 120, ReorderLevel: 30, UnitPrice: 3.2, SupplierID: 1},
		{ID: 3, Name: "Cable 2.5mm 50m", Category: "Electrical", QuantityInStock: 8, ReorderLevel: 5, UnitPrice: 42, SupplierID: 2},
		{ID: 4, Name: "Wall Socket", Category: "Electrical", QuantityInStock: 25, ReorderLevel: 10, UnitPrice: 4.75, SupplierID: 2},
		{ID: 5, Name: "A4 Copy Paper", Category: "Office", Description: "Ream, 500 sheets", QuantityInStock: 15, ReorderLevel: 20, UnitPrice: 5.99, SupplierID: 3},
	}
	for _, p := range products {
		if _, err := catalog.AddProduct(ctx, p); skipExisting(err) != nil {
			return err
		}
	}
	return nil
}

func seedMovements(ctx context.Context, ledger *inventory.Service) error {
	if len(ledger.Transactions()) > 0 {
		return nil
	}
	movements := []struct {
		out   bool
		input inventory.MovementInput
	}{
		{false, inventory.MovementInput{ProductID: 1, Quantity: 20, Notes: "PO 1001"}},
		{true, inventory.MovementInput{ProductID: 1, Quantity: 12, Notes: "Job 77"}},
		{true, inventory.MovementInput{ProductID: 3, Quantity: 4, Notes: "Site A"}},
		{false, inventory.MovementInput{ProductID: 5, Quantity: 10, Notes: "PO 1002"}},
	}
	for _, m := range movements {
		post := ledger.StockIn
		if m.out {
			post = ledger.StockOut
		}
		if _, err := post(ctx, m.input); err != nil {
			return err
		}
	}
	return nil
}
