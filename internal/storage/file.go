package storage

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/odyssey-erp/stockroom/internal/shared"
)

const maxLineBytes = 1 << 20

// Collection is the slice of a store that loading needs.
type Collection[T any] interface {
	Add(record T) error
	List() []T
}

// SkippedLine records a line dropped during load.
type SkippedLine struct {
	Line   int
	Reason string
}

// LoadReport summarises one file load.
type LoadReport struct {
	Entity  string
	Path    string
	Loaded  int
	Skipped []SkippedLine
}

// LoadFile reads path and adds each decodable line to into. A missing file
// yields an empty report. Malformed lines and lines rejected by the store
// are skipped and reported; they never abort the load.
func LoadFile[T any](ctx context.Context, path string, codec Codec[T], into Collection[T]) (LoadReport, error) {
	report := LoadReport{Entity: codec.Entity, Path: path}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("%w: open %s: %w", shared.ErrIOFailure, path, err)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	lineNo := 0
	for {
		line, tooLong, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("%w: read %s: %w", shared.ErrIOFailure, path, err)
		}
		lineNo++
		if tooLong {
			report.Skipped = append(report.Skipped, SkippedLine{Line: lineNo, Reason: fmt.Sprintf("line exceeds %d bytes", maxLineBytes)})
			continue
		}
		if lineNo == 1 && codec.IsHeader(line) {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := codec.DecodeLine(line)
		if err == nil {
			err = into.Add(record)
		}
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedLine{Line: lineNo, Reason: err.Error()})
			continue
		}
		report.Loaded++
	}
	return report, nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLineBytes is drained and flagged instead of buffered. io.EOF is only
// returned when nothing was left to read.
func readLine(r *bufio.Reader) (string, bool, error) {
	var buf []byte
	read, tooLong := false, false
	for {
		chunk, err := r.ReadSlice('\n')
		read = read || len(chunk) > 0
		if !tooLong {
			if len(buf)+len(bytes.TrimRight(chunk, "\r\n")) > maxLineBytes {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case err == nil, errors.Is(err, io.EOF) && read:
			return strings.TrimRight(string(buf), "\r\n"), tooLong, nil
		default:
			return "", false, err
		}
	}
}

// SaveFile writes the header and one line per record, replacing path
// atomically.
func SaveFile[T any](ctx context.Context, path string, codec Codec[T], records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeAtomic(path, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		if _, err := fmt.Fprintln(bw, codec.HeaderLine()); err != nil {
			return err
		}
		for _, record := range records {
			if _, err := fmt.Fprintln(bw, codec.EncodeLine(record)); err != nil {
				return err
			}
		}
		return bw.Flush()
	})
}

// writeAtomic streams into a temp file next to path and renames it into place.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", shared.ErrIOFailure, dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp in %s: %w", shared.ErrIOFailure, dir, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", shared.ErrIOFailure, path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", shared.ErrIOFailure, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", shared.ErrIOFailure, path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", shared.ErrIOFailure, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename %s: %w", shared.ErrIOFailure, path, err)
	}
	return nil
}
