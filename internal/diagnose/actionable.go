// SPDX-License-Identifier: MPL-2.0

package diagnose

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError decorates a failure with what was being attempted and
	// how the user might fix it. The CLI formats these instead of dumping
	// raw error chains at people.
	ActionableError struct {
		// Operation is the verb phrase that failed, e.g. "load configuration".
		Operation string
		// Resource names the file or entity involved, when there is one.
		Resource string
		// Suggestions are fix hints rendered under the message.
		Suggestions []string
		// Cause is the wrapped underlying error.
		Cause error
	}

	// ErrorContext accumulates ActionableError fields fluently:
	//
	//	return diagnose.NewErrorContext().
	//		WithOperation("load configuration").
	//		WithResource(path).
	//		WithSuggestion("Check that the file contains valid TOML syntax").
	//		Wrap(err).
	//		BuildError()
	ErrorContext struct {
		err ActionableError
	}
)

// NewErrorContext starts an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WithOperation sets the verb phrase that failed. An operation is required;
// BuildError returns nil without one.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource names the file or entity involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithSuggestion appends one fix hint. Call it repeatedly for several.
func (c *ErrorContext) WithSuggestion(hint string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, hint)
	return c
}

// Wrap records the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// BuildError finalizes the builder, returning nil when no operation was set.
func (c *ErrorContext) BuildError() error {
	if c.err.Operation == "" {
		return nil
	}
	ae := c.err
	return &ae
}

// Error renders the single-line form:
//
//	failed to <operation>[: <resource>][: <cause>]
func (e *ActionableError) Error() string {
	msg := "failed to " + e.Operation
	if e.Resource != "" {
		msg += ": " + e.Resource
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message followed by bulleted suggestions. Verbose mode
// appends the numbered cause chain underneath.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	for _, hint := range e.Suggestions {
		b.WriteString("\n  • ")
		b.WriteString(hint)
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, err)
			depth++
		}
	}

	return b.String()
}
