// SPDX-License-Identifier: MPL-2.0

// Package diagnose turns failures into guidance the user can act on.
//
// Issue is a catalog of known failure modes with Markdown remediation cards
// rendered through glamour; each card names what went wrong and what to try
// next. ActionableError is the structured error the command layer decorates
// with the failed operation, the resource involved and suggestions before
// printing.
package diagnose
