// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// This package defines error types that include remediation steps and
// Markdown-formatted guidance, improving the user experience when a bundling
// operation fails. All bundling failures are surfaced at bundle time; nothing
// is deferred to the generated plugin's runtime inside Maya.
package issue
