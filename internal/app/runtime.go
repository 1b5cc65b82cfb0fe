package app

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"
)

const testModeEnv = "STOCKROOM_TEST_MODE"

// testBcryptCost keeps password hashing cheap under test.
const testBcryptCost = 4

var (
	testModeFlag atomic.Bool
	testModeOnce sync.Once
)

func detectTestMode() {
	on, _ := strconv.ParseBool(os.Getenv(testModeEnv))
	testModeFlag.Store(on)
}

// InTestMode reports whether runtime side effects such as the metrics
// textfile should be skipped.
func InTestMode() bool {
	testModeOnce.Do(detectTestMode)
	return testModeFlag.Load()
}

// RefreshTestMode re-reads the flag after environment changes.
func RefreshTestMode() {
	testModeOnce.Do(func() {})
	detectTestMode()
}

// HashCost returns the bcrypt cost to use, lowered in test mode.
func (c *Config) HashCost() int {
	if InTestMode() {
		return testBcryptCost
	}
	if c == nil {
		return 0
	}
	return c.BcryptCost
}
