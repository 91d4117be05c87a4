// SPDX-License-Identifier: MPL-2.0

// Package version extracts the project version from the metadata file.
package version

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// metadataKey is the metadata key whose quoted value is the project version.
const metadataKey = "version"

var (
	// ErrVersionNotFound is the sentinel error wrapped by NotFoundError.
	ErrVersionNotFound = errors.New("version not found")

	// ErrVersionMalformed is the sentinel error wrapped by MalformedError.
	ErrVersionMalformed = errors.New("version malformed")
)

type (
	// NotFoundError is returned when the metadata file contains no version line.
	NotFoundError struct {
		Path string
	}

	// MalformedError is returned when a version line exists but its value is
	// not a non-empty double-quoted string.
	MalformedError struct {
		Path string
		Line string
		Num  int
	}
)

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no version declaration found in %q", e.Path)
}

// Unwrap returns ErrVersionNotFound so callers can use errors.Is for programmatic detection.
func (e *NotFoundError) Unwrap() error { return ErrVersionNotFound }

// Error implements the error interface for MalformedError.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s:%d: malformed version declaration %q: value must be a non-empty quoted string", e.Path, e.Num, e.Line)
}

// Unwrap returns ErrVersionMalformed so callers can use errors.Is for programmatic detection.
func (e *MalformedError) Unwrap() error { return ErrVersionMalformed }

// Resolve reads the metadata file at path and returns the version from the
// first line declaring the version key. The value must be a non-empty
// double-quoted string; later version lines are ignored.
//
// Returns NotFoundError when no line declares the key and MalformedError
// when the first declaring line carries anything other than a quoted value.
func Resolve(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read metadata file: %w", err)
	}
	defer f.Close()

	return scan(f, path)
}

// scan implements the line scan over an open metadata stream.
// The path parameter is only used in error values.
func scan(r io.Reader, path string) (string, error) {
	scanner := bufio.NewScanner(r)

	num := 0
	for scanner.Scan() {
		num++
		line := scanner.Text()

		value, ok := declaredValue(line)
		if !ok {
			continue
		}

		v, err := unquote(value)
		if err != nil {
			return "", &MalformedError{Path: path, Line: strings.TrimSpace(line), Num: num}
		}
		return v, nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read metadata file: %w", err)
	}

	return "", &NotFoundError{Path: path}
}

// declaredValue reports whether the line declares the version key and, if so,
// returns the raw right-hand side of the assignment.
func declaredValue(line string) (string, bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", false
	}
	if strings.TrimSpace(key) != metadataKey {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// unquote extracts the text between the leading double quote and the next one.
// Trailing content after the closing quote (e.g. an inline comment) is ignored.
func unquote(value string) (string, error) {
	if len(value) < 2 || value[0] != '"' {
		return "", ErrVersionMalformed
	}
	rest := value[1:]
	end := strings.IndexByte(rest, '"')
	if end <= 0 {
		return "", ErrVersionMalformed
	}
	return rest[:end], nil
}
