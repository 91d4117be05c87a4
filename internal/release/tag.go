// SPDX-License-Identifier: MPL-2.0

// Package release derives image tags from project metadata and drives the
// container toolchain to build and publish release images.
package release

import (
	"errors"
	"fmt"
	"strings"

	"github.com/barskern/frost/internal/version"
)

const (
	// ImageRepository is the fixed registry namespace/repository every
	// release image belongs to.
	ImageRepository = "barskern/frost"

	// DefaultMetadataPath is the project metadata file the version is
	// resolved from, relative to the working directory.
	DefaultMetadataPath = "frost.toml"
)

// ErrInvalidTag is the sentinel error wrapped by InvalidTagError.
var ErrInvalidTag = errors.New("invalid image tag")

type (
	// Tag is the fully-qualified name+version string identifying a release
	// image in the registry. It is computed fresh on every invocation and
	// never persisted.
	Tag string

	// InvalidTagError is returned when a Tag has no usable version suffix.
	InvalidTagError struct {
		Value Tag
	}
)

// Error implements the error interface.
func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("invalid image tag %q (expected '%s:<version>')", string(e.Value), ImageRepository)
}

// Unwrap returns ErrInvalidTag so callers can use errors.Is for programmatic detection.
func (e *InvalidTagError) Unwrap() error { return ErrInvalidTag }

// Validate checks that the tag carries the fixed repository prefix and a
// non-empty version suffix free of whitespace.
func (t Tag) Validate() error {
	suffix, ok := strings.CutPrefix(string(t), ImageRepository+":")
	if !ok || suffix == "" || strings.ContainsAny(suffix, " \t\n") {
		return &InvalidTagError{Value: t}
	}
	return nil
}

// Version returns the version suffix of the tag.
func (t Tag) Version() string {
	_, after, _ := strings.Cut(string(t), ":")
	return after
}

// String returns the tag as a plain string.
func (t Tag) String() string { return string(t) }

// DeriveTag composes the release tag for a resolved version string.
func DeriveTag(ver string) Tag {
	return Tag(ImageRepository + ":" + ver)
}

// ResolveTag reads the metadata file and derives the release tag from its
// version declaration. Resolution failures surface as the version package's
// NotFoundError or MalformedError.
func ResolveTag(metadataPath string) (Tag, error) {
	ver, err := version.Resolve(metadataPath)
	if err != nil {
		return "", err
	}
	return DeriveTag(ver), nil
}
