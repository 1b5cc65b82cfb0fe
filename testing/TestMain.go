// Package testing switches the process into test mode when imported for
// side effects: cheap password hashing, no metrics textfile, and data
// directories that never point at the working tree.
package testing

import (
	"os"
	"path/filepath"
	"sync"
	stdtesting "testing"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("STOCKROOM_TEST_MODE", "1")
		if os.Getenv("DATA_DIR") != "" && os.Getenv("BACKUP_DIR") != "" {
			return
		}
		root, err := os.MkdirTemp("", "stockroom-test-*")
		if err != nil {
			return
		}
		if os.Getenv("DATA_DIR") == "" {
			_ = os.Setenv("DATA_DIR", filepath.Join(root, "data"))
		}
		if os.Getenv("BACKUP_DIR") == "" {
			_ = os.Setenv("BACKUP_DIR", filepath.Join(root, "backup"))
		}
	})
}

func init() {
	ensureTestMode()
}

// TestMain can be called from a package TestMain to force test mode.
func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
