// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"mayabundle/internal/bundler"
	"mayabundle/internal/config"
	"mayabundle/internal/issue"
	"mayabundle/internal/launch"
	"mayabundle/pkg/bundlefile"
)

// issueIDForError maps well-known bundle/resolve/verify failures to their
// issue catalog entries.
func issueIDForError(err error) (issue.Id, bool) {
	switch {
	case errors.Is(err, launch.ErrMalformedExpression):
		return issue.LaunchParseFailedId, true
	case errors.Is(err, launch.ErrModuleNotFound):
		return issue.ModuleNotFoundId, true
	case errors.Is(err, launch.ErrUIScriptNotFound):
		return issue.UiScriptNotFoundId, true
	case errors.Is(err, bundler.ErrIconInvalid):
		return issue.IconInvalidId, true
	case errors.Is(err, bundler.ErrHookFailed):
		return issue.HookFailedId, true
	case errors.Is(err, config.ErrInvalidConfig):
		return issue.ConfigLoadFailedId, true
	case errors.Is(err, fs.ErrPermission):
		return issue.OutputNotWritableId, true
	}
	return 0, false
}

// issueIDForBundlefileError maps batch manifest loading failures to their
// issue catalog entries. Separate from issueIDForError because a missing
// or malformed file means something different when it is the manifest
// itself rather than a tool source.
func issueIDForBundlefileError(err error) (issue.Id, bool) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return issue.ManifestNotFoundId, true
	case errors.Is(err, bundlefile.ErrMalformedBundlefile),
		errors.Is(err, bundlefile.ErrNoTools):
		return issue.ManifestParseErrorId, true
	}
	return 0, false
}

// renderKnownIssue writes the rendered issue card for recognized failures
// to stderr. Unrecognized errors print nothing; the error itself is still
// surfaced by the command's normal error path.
func renderKnownIssue(err error) {
	renderIssueCard(issueIDForError(err))
}

// renderKnownBundlefileIssue is renderKnownIssue for manifest loading
// failures in the batch command.
func renderKnownBundlefileIssue(err error) {
	renderIssueCard(issueIDForBundlefileError(err))
}

func renderIssueCard(id issue.Id, ok bool) {
	if !ok {
		return
	}

	style := "dark"
	if currentConfig().UI.ColorScheme == config.ColorSchemeLight {
		style = "light"
	}

	rendered, renderErr := issue.Get(id).Render(style)
	if renderErr != nil {
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}
