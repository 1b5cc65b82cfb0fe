package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/stockroom/internal/app"
	_ "github.com/odyssey-erp/stockroom/testing"
)

type harness struct {
	t        *testing.T
	state    *app.State
	services *app.Services
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	root := t.TempDir()
	cfg := &app.Config{
		DataDir:         filepath.Join(root, "data"),
		BackupDir:       filepath.Join(root, "backup"),
		MaxProducts:     50,
		MaxSuppliers:    50,
		MaxTransactions: 50,
		MaxUsers:        10,
		BcryptCost:      4,
	}
	h := &harness{t: t, stdout: new(bytes.Buffer), stderr: new(bytes.Buffer)}
	h.state = app.NewState(cfg, nil, nil)
	_, err := h.state.Load(context.Background())
	require.NoError(t, err)
	h.services = app.NewServices(app.ServicesParams{
		Config:   cfg,
		State:    h.state,
		Clock:    func() time.Time { return time.Date(2025, 1, 10, 14, 0, 0, 0, time.UTC) },
		LowStock: LowStockPrinter(h.stdout),
	})
	_, err = h.services.Users.SeedDefaults(context.Background())
	require.NoError(t, err)
	return h
}

func (h *harness) run(user, password string, args ...string) int {
	h.t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()
	return Run(context.Background(), Options{
		Args:     args,
		Username: user,
		Password: password,
		State:    h.state,
		Services: h.services,
		Stdout:   h.stdout,
		Stderr:   h.stderr,
	})
}

func (h *harness) admin(args ...string) int {
	h.t.Helper()
	return h.run("admin", "admin123", args...)
}

func (h *harness) staff(args ...string) int {
	h.t.Helper()
	return h.run("staff", "staff123", args...)
}

func (h *harness) seedCatalog() {
	h.t.Helper()
	require.Equal(h.t, ExitOK, h.admin("suppliers", "add", "-id", "1", "-name", "Acme", "-email", "ops@acme.io", "-phone", "555-0100 22"))
	require.Equal(h.t, ExitOK, h.admin("products", "add", "-id", "1", "-name", "Widget", "-category", "Tools",
		"-quantity", "10", "-reorder", "3", "-price", "2.5", "-supplier", "1"))
	require.Equal(h.t, ExitOK, h.admin("products", "add", "-id", "2", "-name", "Gadget", "-category", "Parts",
		"-quantity", "40", "-reorder", "5", "-price", "1", "-supplier", "1"))
}

func TestRunRejectsBadCredentials(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, ExitFailure, h.run("admin", "nope", "products", "list"))
	require.Contains(t, h.stderr.String(), "Invalid username or password.")

	require.Equal(t, ExitUsage, h.run("", "", "products", "list"))
}

func TestRunUnknownCommandPrintsUsage(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, ExitUsage, h.admin("products", "explode"))
	require.Contains(t, h.stderr.String(), "usage: stockroom <command>")
	require.Contains(t, h.stderr.String(), "products add")
}

func TestStaffIsLimited(t *testing.T) {
	h := newHarness(t)
	h.seedCatalog()

	require.Equal(t, ExitOK, h.staff("products", "list"))
	require.Contains(t, h.stdout.String(), "Widget")

	require.Equal(t, ExitOK, h.staff("stock", "in", "-product", "1", "-quantity", "2"))
	require.Contains(t, h.stdout.String(), "New quantity: 12")

	require.Equal(t, ExitFailure, h.staff("suppliers", "delete", "1"))
	require.Contains(t, h.stderr.String(), "permission")

	require.Equal(t, ExitFailure, h.staff("backup"))
	require.Equal(t, ExitFailure, h.staff("report", "summary"))
}

func TestStockOutWarnsAndRejectsOverdraw(t *testing.T) {
	h := newHarness(t)
	h.seedCatalog()

	require.Equal(t, ExitFailure, h.admin("stock", "out", "-product", "1", "-quantity", "11"))
	require.Contains(t, h.stderr.String(), "Insufficient stock")

	require.Equal(t, ExitOK, h.admin("stock", "out", "-product", "1", "-quantity", "8", "-notes", "order 5"))
	require.Contains(t, h.stdout.String(), "New quantity: 2")
	require.Contains(t, h.stdout.String(), "WARNING: low stock for product 1 (Widget)")

	require.Equal(t, ExitOK, h.staff("products", "low-stock"))
	require.Contains(t, h.stdout.String(), "Widget")
	require.NotContains(t, h.stdout.String(), "Gadget")

	require.Equal(t, ExitOK, h.staff("stock", "history", "-product", "1"))
	require.Contains(t, h.stdout.String(), "order 5")

	require.Equal(t, ExitUsage, h.admin("stock", "in", "-product", "0", "-quantity", "1"))
}

func TestSupplierInUse(t *testing.T) {
	h := newHarness(t)
	h.seedCatalog()

	require.Equal(t, ExitFailure, h.admin("suppliers", "delete", "1"))
	require.Contains(t, h.stderr.String(), "products are using this supplier")

	require.Equal(t, ExitOK, h.admin("products", "delete", "1"))
	require.Equal(t, ExitOK, h.admin("products", "delete", "2"))
	require.Equal(t, ExitOK, h.admin("suppliers", "delete", "1"))
	require.Equal(t, ExitOK, h.admin("suppliers", "list"))
	require.Contains(t, h.stdout.String(), "No suppliers found.")
}

func TestProductsUpdateKeepsUnsetFields(t *testing.T) {
	h := newHarness(t)
	h.seedCatalog()

	require.Equal(t, ExitOK, h.admin("products", "update", "-id", "1", "-price", "3.75"))
	p, err := h.services.Catalog.Product(1)
	require.NoError(t, err)
	require.Equal(t, "Widget", p.Name)
	require.Equal(t, 10, p.QuantityInStock)
	require.InDelta(t, 3.75, p.UnitPrice, 1e-9)

	require.Equal(t, ExitFailure, h.admin("products", "update", "-id", "1", "-supplier", "9"))
	require.Contains(t, h.stderr.String(), "Supplier ID does not exist.")

	require.Equal(t, ExitUsage, h.admin("products", "update", "-price", "1"))
}

func TestReports(t *testing.T) {
	h := newHarness(t)
	h.seedCatalog()
	require.Equal(t, ExitOK, h.admin("stock", "in", "-product", "2", "-quantity", "1"))

	require.Equal(t, ExitOK, h.admin("report", "top-quantity", "-n", "1"))
	require.Contains(t, h.stdout.String(), "Gadget")
	require.NotContains(t, h.stdout.String(), "Widget")

	require.Equal(t, ExitOK, h.admin("report", "range", "-from", "2025-01-01", "-to", "2025-01-31", "-count"))
	require.Contains(t, h.stdout.String(), "1 transactions between 2025-01-01 and 2025-01-31")

	require.Equal(t, ExitUsage, h.admin("report", "range", "-from", "January", "-to", "2025-01-31"))

	require.Equal(t, ExitOK, h.admin("report", "summary"))
	require.Contains(t, h.stdout.String(), "Stock value")
	require.Contains(t, h.stdout.String(), "66.00")
}

func TestUsersAddAndList(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, ExitOK, h.admin("users", "add", "-username", "dana", "-password", "pw1", "-role", "ADMIN"))
	require.Equal(t, ExitOK, h.run("dana", "pw1", "users", "list"))
	require.Contains(t, h.stdout.String(), "dana")
	require.Contains(t, h.stdout.String(), "staff")

	require.Equal(t, ExitFailure, h.admin("users", "add", "-username", "dana", "-password", "pw2"))
	require.Contains(t, h.stderr.String(), "ID already exists.")
}

func TestBackupAndRestore(t *testing.T) {
	h := newHarness(t)
	h.seedCatalog()

	require.Equal(t, ExitOK, h.admin("backup"))
	require.Contains(t, h.stdout.String(), "Backed up products.txt")

	require.Equal(t, ExitOK, h.admin("products", "delete", "2"))
	require.Equal(t, 1, h.state.Products.Count())

	require.Equal(t, ExitOK, h.admin("restore"))
	require.Equal(t, 2, h.state.Products.Count())
}
