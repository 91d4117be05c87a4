// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
)

// DotenvFileName is the dotenv file looked up in the working directory.
const DotenvFileName = ".env"

// LoadDotenv exports the variables of a dotenv file into the process
// environment so they reach the environment bindings of the configuration
// layer. Values already present in the environment win over file values, and
// a missing file is not an error.
func LoadDotenv(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read env file '%s': %w", path, err)
	}

	fileEnv := make(map[string]string)
	if err := ParseEnvFile(fileEnv, content, path); err != nil {
		return err
	}

	for key, value := range fileEnv {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s from '%s': %w", key, path, err)
		}
	}

	return nil
}

// ParseEnvFile parses dotenv content into env, one KEY=value per line.
// Blank lines and #-comments are skipped and an optional export prefix is
// tolerated. Values may be bare, single-quoted (taken literally) or
// double-quoted (with \n, \r, \t, \\, \" and \$ escapes); bare values lose
// any trailing inline comment. The filename only feeds error messages.
func ParseEnvFile(env map[string]string, content []byte, filename string) error {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for num := 1; scanner.Scan(); num++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

		key, raw, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("%s:%d: invalid format (missing '=')", filename, num)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("%s:%d: empty variable name", filename, num)
		}

		value, err := unquoteEnvValue(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s:%d: %w", filename, num, err)
		}
		env[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// unquoteEnvValue interprets one raw value according to its quoting.
func unquoteEnvValue(raw string) (string, error) {
	switch {
	case raw == "":
		return "", nil
	case raw[0] == '\'':
		if len(raw) < 2 || raw[len(raw)-1] != '\'' {
			return "", errors.New("unterminated single quote")
		}
		return raw[1 : len(raw)-1], nil
	case raw[0] == '"':
		if len(raw) < 2 || raw[len(raw)-1] != '"' {
			return "", errors.New("unterminated double quote")
		}
		return expandEscapes(raw[1 : len(raw)-1]), nil
	default:
		// A hash directly attached to the value is part of it, one after
		// whitespace starts a comment.
		if idx := strings.Index(raw, " #"); idx != -1 {
			raw = strings.TrimSpace(raw[:idx])
		}
		return raw, nil
	}
}

// expandEscapes rewrites the escape sequences a double-quoted value supports.
// Unknown sequences pass through with their backslash intact.
func expandEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\', '"', '$':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
