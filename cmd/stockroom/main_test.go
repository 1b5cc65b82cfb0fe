package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/stockroom/cmd/stockroom/cli"
	"github.com/odyssey-erp/stockroom/internal/storage"
	_ "github.com/odyssey-erp/stockroom/testing"
)

func TestRunSeedsUsersAndPersists(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("BACKUP_DIR", filepath.Join(root, "backup"))
	t.Setenv("STOCKROOM_USER", "admin")
	t.Setenv("STOCKROOM_PASSWORD", "admin123")

	require.Equal(t, cli.ExitOK, run([]string{"suppliers", "add", "-id", "3", "-name", "Acme"}))

	raw, err := os.ReadFile(filepath.Join(dataDir, storage.SuppliersFile))
	require.NoError(t, err)
	require.Equal(t, "supplier_id|name|contact_number|email|address\n3|Acme|||\n", string(raw))

	users, err := os.ReadFile(filepath.Join(dataDir, storage.UsersFile))
	require.NoError(t, err)
	require.Contains(t, string(users), "admin|")
	require.Contains(t, string(users), "|STAFF\n")

	require.Equal(t, cli.ExitOK, run([]string{"products", "add", "-id", "1", "-name", "Bolt", "-supplier", "3"}))
	require.Equal(t, cli.ExitFailure, run([]string{"suppliers", "delete", "3"}))
}

func TestRunRejectsBadConfig(t *testing.T) {
	t.Setenv("MAX_PRODUCTS", "-3")
	require.Equal(t, cli.ExitFailure, run([]string{"products", "list"}))
}
