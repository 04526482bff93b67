// SPDX-License-Identifier: MPL-2.0

// Package history records bundle runs in a local SQLite database.
//
// Every bundle attempt appends one record: plugin name, launch expression,
// resolved layout, output directory, file count, duration, and outcome.
// The store backs the 'mayabundle history' command and lets artists answer
// "when was this tool last bundled, and did it work" without digging
// through terminal scrollback.
package history
