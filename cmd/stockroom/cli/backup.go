package cli

import (
	"fmt"
	"strings"

	"github.com/odyssey-erp/stockroom/internal/storage"
)

func backupCommands() map[string]command {
	return map[string]command{
		"backup":  {usage: "", run: runBackup},
		"restore": {usage: "", run: runRestore},
	}
}

func runBackup(e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	report, err := e.state.Backup(e.ctx)
	if err != nil {
		return err
	}
	printCopy(e, "Backed up", report)
	return nil
}

func runRestore(e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	report, loads, err := e.state.Restore(e.ctx)
	if err != nil {
		return err
	}
	printCopy(e, "Restored", report)
	for _, load := range loads {
		if len(load.Skipped) > 0 {
			fmt.Fprintf(e.stdout, "%s: %d loaded, %d lines skipped\n", load.Entity, load.Loaded, len(load.Skipped))
		}
	}
	return nil
}

func printCopy(e *env, verb string, report storage.CopyReport) {
	if len(report.Copied) == 0 {
		fmt.Fprintf(e.stdout, "%s nothing: no files found.\n", verb)
	} else {
		fmt.Fprintf(e.stdout, "%s %s.\n", verb, strings.Join(report.Copied, ", "))
	}
	if len(report.Missing) > 0 {
		fmt.Fprintf(e.stdout, "Skipped missing %s.\n", strings.Join(report.Missing, ", "))
	}
	if len(report.Removed) > 0 {
		fmt.Fprintf(e.stdout, "Removed stale %s.\n", strings.Join(report.Removed, ", "))
	}
}
