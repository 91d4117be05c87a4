// SPDX-License-Identifier: MPL-2.0

// Command frost builds, publishes and runs the weather station sync image.
package main

import cmd "github.com/barskern/frost/cmd/frost"

func main() {
	cmd.Execute()
}
