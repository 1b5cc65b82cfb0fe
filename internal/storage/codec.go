// Package storage persists stores as pipe-delimited text files and copies
// them between the data and backup directories.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter separates fields on a line.
const Delimiter = "|"

// ErrMalformedLine is returned by DecodeLine for lines that cannot be converted.
var ErrMalformedLine = errors.New("malformed line")

// Codec converts one entity kind to and from delimited lines.
type Codec[T any] struct {
	// Entity labels logs and reports, e.g. "product".
	Entity string
	// File is the file name inside the data and backup directories.
	File string
	// Header lists the column names written on the first line.
	Header []string
	// MinFields is the fewest fields a line may carry; trailing optional
	// fields may be absent.
	MinFields int
	Encode    func(T) []string
	Decode    func(fields []string) (T, error)
}

// HeaderLine renders the header row.
func (c Codec[T]) HeaderLine() string {
	return strings.Join(c.Header, Delimiter)
}

// IsHeader reports whether line starts with the first header column and a delimiter.
func (c Codec[T]) IsHeader(line string) bool {
	return len(c.Header) > 0 && strings.HasPrefix(line, c.Header[0]+Delimiter)
}

// EncodeLine renders v as a single line without the trailing newline.
func (c Codec[T]) EncodeLine(v T) string {
	return strings.Join(c.Encode(v), Delimiter)
}

// DecodeLine splits line and converts the fields by position. Empty fields
// are preserved.
func (c Codec[T]) DecodeLine(line string) (T, error) {
	var zero T
	fields := strings.Split(line, Delimiter)
	if len(fields) < c.MinFields || len(fields) > len(c.Header) {
		return zero, fmt.Errorf("%w: %s wants %d-%d fields, got %d",
			ErrMalformedLine, c.Entity, c.MinFields, len(c.Header), len(fields))
	}
	v, err := c.Decode(fields)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrMalformedLine, err)
	}
	return v, nil
}
