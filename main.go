// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/trove-launcher/trove/cmd/trove"

func main() {
	cmd.Execute()
}
