package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/stockroom/internal/shared"
)

// Layout locates the live and backup directories.
type Layout struct {
	DataDir   string
	BackupDir string
}

// EnsureDirs creates both directories when missing.
func (l Layout) EnsureDirs() error {
	for _, dir := range []string{l.DataDir, l.BackupDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: mkdir %s: %w", shared.ErrIOFailure, dir, err)
		}
	}
	return nil
}

// DataPath returns the live path of file.
func (l Layout) DataPath(file string) string { return filepath.Join(l.DataDir, file) }

// BackupPath returns the backup path of file.
func (l Layout) BackupPath(file string) string { return filepath.Join(l.BackupDir, file) }

// CopyReport lists which files were copied, which had no source and which
// stale destination copies were removed.
type CopyReport struct {
	Copied  []string
	Missing []string
	Removed []string
}

// Backup copies every live file over its backup copy. A backup copy whose
// live file no longer exists is removed.
func (l Layout) Backup(ctx context.Context) (CopyReport, error) {
	return copyAll(ctx, l.DataPath, l.BackupPath, true)
}

// Restore copies every backup file over its live copy. Live files without a
// backup copy are kept. In-memory stores are untouched; callers reload
// afterwards.
func (l Layout) Restore(ctx context.Context) (CopyReport, error) {
	return copyAll(ctx, l.BackupPath, l.DataPath, false)
}

func copyAll(ctx context.Context, src, dst func(string) string, prune bool) (CopyReport, error) {
	const (
		failed = iota
		copied
		missing
		removed
	)
	outcome := make([]int, len(Files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range Files {
		g.Go(func() error {
			ok, err := copyFile(ctx, src(file), dst(file))
			switch {
			case err != nil:
				outcome[i] = failed
				return err
			case ok:
				outcome[i] = copied
				return nil
			case !prune:
				outcome[i] = missing
				return nil
			}
			gone, err := removeStale(dst(file))
			switch {
			case err != nil:
				outcome[i] = failed
			case gone:
				outcome[i] = removed
			default:
				outcome[i] = missing
			}
			return err
		})
	}
	err := g.Wait()
	var report CopyReport
	for i, file := range Files {
		switch outcome[i] {
		case copied:
			report.Copied = append(report.Copied, file)
		case missing:
			report.Missing = append(report.Missing, file)
		case removed:
			report.Missing = append(report.Missing, file)
			report.Removed = append(report.Removed, file)
		}
	}
	return report, err
}

func copyFile(ctx context.Context, src, dst string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	in, err := os.Open(src)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: open %s: %w", shared.ErrIOFailure, src, err)
	}
	defer in.Close()
	if err := writeAtomic(dst, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	}); err != nil {
		return false, err
	}
	return true, nil
}

// removeStale deletes path and reports whether anything was there.
func removeStale(path string) (bool, error) {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: remove %s: %w", shared.ErrIOFailure, path, err)
	}
	return true, nil
}
