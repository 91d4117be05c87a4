// SPDX-License-Identifier: MPL-2.0

package version

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// versionGen draws plausible version strings: quote-free, non-empty printable text.
var versionGen = rapid.StringMatching(`[0-9]+\.[0-9]+\.[0-9]+(-[a-z0-9]{1,8})?`)

// fillerLineGen draws metadata lines that must never be mistaken for a
// version declaration.
var fillerLineGen = rapid.SampledFrom([]string{
	``,
	`# release metadata`,
	`name = "frost"`,
	`authors = ["barskern"]`,
	`api_version = "3"`,
	`versions = "not-this-one"`,
	`description = "fetch weather observations"`,
})

func TestResolveRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		want := versionGen.Draw(rt, "version")
		before := rapid.SliceOfN(fillerLineGen, 0, 5).Draw(rt, "before")
		after := rapid.SliceOfN(fillerLineGen, 0, 5).Draw(rt, "after")
		indent := rapid.SampledFrom([]string{"", " ", "\t", "  "}).Draw(rt, "indent")
		spacing := rapid.SampledFrom([]string{"=", " = ", " =", "= "}).Draw(rt, "spacing")

		var sb strings.Builder
		for _, line := range before {
			sb.WriteString(line + "\n")
		}
		fmt.Fprintf(&sb, "%sversion%s%q\n", indent, spacing, want)
		for _, line := range after {
			sb.WriteString(line + "\n")
		}

		path := writeMetadata(t, sb.String())
		got, err := Resolve(path)
		if err != nil {
			rt.Fatalf("Resolve() error = %v, want nil (content: %q)", err, sb.String())
		}
		if got != want {
			rt.Errorf("Resolve() = %q, want %q", got, want)
		}
	})
}

func TestResolveFirstMatchProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		versions := rapid.SliceOfN(versionGen, 2, 5).Draw(rt, "versions")

		var sb strings.Builder
		for _, v := range versions {
			fmt.Fprintf(&sb, "version = %q\n", v)
		}

		path := writeMetadata(t, sb.String())
		got, err := Resolve(path)
		if err != nil {
			rt.Fatalf("Resolve() error = %v, want nil", err)
		}
		if got != versions[0] {
			rt.Errorf("Resolve() = %q, want first declared version %q", got, versions[0])
		}
	})
}
