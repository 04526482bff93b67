// SPDX-License-Identifier: MPL-2.0

package main

import cmd "mayabundle/cmd/mayabundle"

func main() {
	cmd.Execute()
}
