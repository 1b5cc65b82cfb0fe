package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/stockroom/internal/auth"
	"github.com/odyssey-erp/stockroom/internal/inventory"
	"github.com/odyssey-erp/stockroom/internal/masterdata"
	"github.com/odyssey-erp/stockroom/internal/shared"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(raw)
}

func TestRoundTripAllEntities(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	products := []masterdata.Product{
		{ID: 1, Name: "Widget", Category: "Tools", Description: "", QuantityInStock: 10, ReorderLevel: 2, UnitPrice: 2.5, SupplierID: 1},
		{ID: 2, Name: "Gadget", Category: "", Description: "Shiny", QuantityInStock: 0, ReorderLevel: 0, UnitPrice: 0, SupplierID: 2},
	}
	suppliers := []masterdata.Supplier{
		{ID: 1, Name: "Acme", ContactNumber: "+1 555 010 2030", Email: "ops@acme.io", Address: "1 Road"},
		{ID: 2, Name: "Beta", Address: "2 Road"},
	}
	entries := []inventory.Transaction{
		{ID: 1, ProductID: 1, Type: inventory.TransactionTypeIn, Quantity: 10, Timestamp: "2025-01-02 10:00:00", Notes: "opening"},
		{ID: 2, ProductID: 1, Type: inventory.TransactionTypeOut, Quantity: 3, Timestamp: "2025-01-03 11:30:00"},
	}
	users := []auth.User{
		{Username: "admin", PasswordHash: "$2a$10$abcdefghijklmnopqrstuv", Role: auth.RoleAdmin},
		{Username: "staff", PasswordHash: "digest", Role: auth.RoleStaff},
	}

	require.NoError(t, SaveFile(ctx, filepath.Join(dir, ProductsFile), ProductCodec, products))
	require.NoError(t, SaveFile(ctx, filepath.Join(dir, SuppliersFile), SupplierCodec, suppliers))
	require.NoError(t, SaveFile(ctx, filepath.Join(dir, TransactionsFile), TransactionCodec, entries))
	require.NoError(t, SaveFile(ctx, filepath.Join(dir, UsersFile), UserCodec, users))

	require.Equal(t,
		"id|name|category|description|quantity|reorder_level|price|supplier_id\n"+
			"1|Widget|Tools||10|2|2.50|1\n"+
			"2|Gadget||Shiny|0|0|0.00|2\n",
		readFile(t, filepath.Join(dir, ProductsFile)))

	productStore := masterdata.NewProductStore(0)
	report, err := LoadFile(ctx, filepath.Join(dir, ProductsFile), ProductCodec, productStore)
	require.NoError(t, err)
	require.Equal(t, 2, report.Loaded)
	require.Empty(t, report.Skipped)
	require.Equal(t, products, productStore.List())

	supplierStore := masterdata.NewSupplierStore(0)
	_, err = LoadFile(ctx, filepath.Join(dir, SuppliersFile), SupplierCodec, supplierStore)
	require.NoError(t, err)
	require.Equal(t, suppliers, supplierStore.List())

	ledger := inventory.NewLedgerStore(0)
	_, err = LoadFile(ctx, filepath.Join(dir, TransactionsFile), TransactionCodec, ledger)
	require.NoError(t, err)
	require.Equal(t, entries, ledger.List())

	userStore := auth.NewUserStore(0)
	_, err = LoadFile(ctx, filepath.Join(dir, UsersFile), UserCodec, userStore)
	require.NoError(t, err)
	require.Equal(t, users, userStore.List())
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store := masterdata.NewProductStore(0)
	report, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "absent.txt"), ProductCodec, store)
	require.NoError(t, err)
	require.Zero(t, report.Loaded)
	require.Zero(t, store.Count())
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProductsFile)
	writeFile(t, path, strings.Join([]string{
		"id|name|category|description|quantity|reorder_level|price|supplier_id",
		"1|Widget|Tools|Blue|10|2|2.50|1",
		"2|Short|line",
		"3|Bad qty|Tools||ten|2|1.00|1",
		"1|Duplicate|Tools||1|1|1.00|1",
		"",
		"4|Negative|Tools||-1|0|1.00|1",
		"5|Gizmo|Parts||7|1|3.25|2\r",
	}, "\n")+"\n")

	store := masterdata.NewProductStore(0)
	report, err := LoadFile(context.Background(), path, ProductCodec, store)
	require.NoError(t, err)
	require.Equal(t, 2, report.Loaded)
	require.Len(t, report.Skipped, 4)

	lines := make([]int, len(report.Skipped))
	for i, s := range report.Skipped {
		lines[i] = s.Line
		require.NotEmpty(t, s.Reason)
	}
	require.Equal(t, []int{3, 4, 5, 7}, lines)

	got, ok := store.FindByID(5)
	require.True(t, ok)
	require.InDelta(t, 3.25, got.UnitPrice, 1e-9)
	require.Equal(t, int64(2), got.SupplierID)
}

func TestLoadSkipsOverlongLineAndContinues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProductsFile)
	writeFile(t, path, strings.Join([]string{
		"1|Widget|Tools||10|2|2.50|1",
		"2|" + strings.Repeat("x", 2*maxLineBytes) + "|Tools||1|1|1.00|1",
		"3|Gizmo|Parts||7|1|3.25|2",
	}, "\n"))

	store := masterdata.NewProductStore(0)
	report, err := LoadFile(context.Background(), path, ProductCodec, store)
	require.NoError(t, err)
	require.Equal(t, 2, report.Loaded)
	require.Len(t, report.Skipped, 1)
	require.Equal(t, 2, report.Skipped[0].Line)
	require.Contains(t, report.Skipped[0].Reason, "exceeds")
	require.True(t, store.Exists(1))
	require.True(t, store.Exists(3))
	require.False(t, store.Exists(2))
}

func TestLoadRejectsNonFinitePrice(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProductsFile)
	writeFile(t, path, "1|Widget|Tools||10|2|Inf|1\n2|Gadget|Tools||0|2|NaN|1\n3|Gizmo|Parts||7|1|3.25|2\n")

	store := masterdata.NewProductStore(0)
	report, err := LoadFile(context.Background(), path, ProductCodec, store)
	require.NoError(t, err)
	require.Equal(t, 1, report.Loaded)
	require.Len(t, report.Skipped, 2)
	require.True(t, store.Exists(3))
}

func TestLoadWithoutHeaderKeepsFirstLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), SuppliersFile)
	writeFile(t, path, "7|Gamma|||\n")

	store := masterdata.NewSupplierStore(0)
	report, err := LoadFile(context.Background(), path, SupplierCodec, store)
	require.NoError(t, err)
	require.Equal(t, 1, report.Loaded)
	require.Equal(t, []masterdata.Supplier{{ID: 7, Name: "Gamma"}}, store.List())
}

func TestOptionalTrailingFields(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	txPath := filepath.Join(dir, TransactionsFile)
	writeFile(t, txPath, "transaction_id|product_id|type|quantity|date_time|notes\n1|4|OUT|2|2025-01-05 08:00:00\n2|4|SIDEWAYS|2|2025-01-05 08:00:00|x\n")
	ledger := inventory.NewLedgerStore(0)
	report, err := LoadFile(ctx, txPath, TransactionCodec, ledger)
	require.NoError(t, err)
	require.Equal(t, 1, report.Loaded)
	require.Len(t, report.Skipped, 1)
	entry, _ := ledger.FindByID(1)
	require.Empty(t, entry.Notes)

	userPath := filepath.Join(dir, UsersFile)
	writeFile(t, userPath, "username|password_hash|role\nlegacy|digest\nboss|digest|ADMIN\n")
	users := auth.NewUserStore(0)
	_, err = LoadFile(ctx, userPath, UserCodec, users)
	require.NoError(t, err)
	legacy, _ := users.FindByID("legacy")
	require.Equal(t, auth.RoleStaff, legacy.Role)
	boss, _ := users.FindByID("boss")
	require.Equal(t, auth.RoleAdmin, boss.Role)
}

func TestLoadRespectsCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), SuppliersFile)
	writeFile(t, path, "supplier_id|name|contact_number|email|address\n1|A|||\n2|B|||\n3|C|||\n")

	store := masterdata.NewSupplierStore(2)
	report, err := LoadFile(context.Background(), path, SupplierCodec, store)
	require.NoError(t, err)
	require.Equal(t, 2, report.Loaded)
	require.Len(t, report.Skipped, 1)
	require.Contains(t, report.Skipped[0].Reason, shared.ErrCapacityExceeded.Error())
}

func TestSaveFailureWrapsIOFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	writeFile(t, blocker, "not a directory")

	err := SaveFile(context.Background(), filepath.Join(blocker, ProductsFile), ProductCodec, nil)
	require.ErrorIs(t, err, shared.ErrIOFailure)
}

func TestBackupAndRestore(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	layout := Layout{DataDir: filepath.Join(root, "data"), BackupDir: filepath.Join(root, "backup")}
	require.NoError(t, layout.EnsureDirs())

	writeFile(t, layout.DataPath(ProductsFile), "id|name\n1|original\n")
	writeFile(t, layout.DataPath(UsersFile), "username|password_hash|role\nadmin|d|ADMIN\n")

	report, err := layout.Backup(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{ProductsFile, UsersFile}, report.Copied)
	require.Equal(t, []string{SuppliersFile, TransactionsFile}, report.Missing)
	require.Equal(t, "id|name\n1|original\n", readFile(t, layout.BackupPath(ProductsFile)))

	writeFile(t, layout.DataPath(ProductsFile), "id|name\n1|changed\n")
	report, err = layout.Restore(ctx)
	require.NoError(t, err)
	require.Len(t, report.Copied, 2)
	require.Equal(t, "id|name\n1|original\n", readFile(t, layout.DataPath(ProductsFile)))

	_, err = os.Stat(layout.DataPath(SuppliersFile))
	require.True(t, os.IsNotExist(err))
}

func TestBackupRemovesStaleCopies(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	layout := Layout{DataDir: filepath.Join(root, "data"), BackupDir: filepath.Join(root, "backup")}
	require.NoError(t, layout.EnsureDirs())

	writeFile(t, layout.DataPath(ProductsFile), "id|name\n1|widget\n")
	writeFile(t, layout.DataPath(SuppliersFile), "supplier_id|name\n1|Acme\n")
	_, err := layout.Backup(ctx)
	require.NoError(t, err)

	require.NoError(t, os.Remove(layout.DataPath(SuppliersFile)))
	report, err := layout.Backup(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{SuppliersFile}, report.Removed)
	require.Contains(t, report.Missing, SuppliersFile)
	_, err = os.Stat(layout.BackupPath(SuppliersFile))
	require.True(t, os.IsNotExist(err))

	writeFile(t, layout.DataPath(TransactionsFile), "transaction_id|product_id\n")
	report, err = layout.Restore(ctx)
	require.NoError(t, err)
	require.Empty(t, report.Removed)
	require.Equal(t, []string{ProductsFile}, report.Copied)
	_, err = os.Stat(layout.DataPath(SuppliersFile))
	require.True(t, os.IsNotExist(err))
	require.Equal(t, "transaction_id|product_id\n", readFile(t, layout.DataPath(TransactionsFile)))
}

func TestBackupHonoursCancellation(t *testing.T) {
	root := t.TempDir()
	layout := Layout{DataDir: filepath.Join(root, "data"), BackupDir: filepath.Join(root, "backup")}
	require.NoError(t, layout.EnsureDirs())
	writeFile(t, layout.DataPath(ProductsFile), "id|name\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := layout.Backup(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
