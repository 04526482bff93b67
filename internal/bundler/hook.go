// SPDX-License-Identifier: MPL-2.0

package bundler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrHookFailed is returned when a post-bundle hook cannot be parsed or
// exits with a non-zero status.
var ErrHookFailed = errors.New("post-bundle hook failed")

// hookEnv carries bundle facts into the hook's environment.
type hookEnv struct {
	PluginName string
	PluginDir  string
	PluginFile string
}

// runHook executes a post-bundle shell hook in the embedded POSIX
// interpreter. The hook runs with the output directory as its working
// directory and MAYABUNDLE_* variables describing the finished bundle; a
// non-zero exit is an error.
func runHook(ctx context.Context, script, workDir string, env hookEnv, stdout, stderr io.Writer) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "hook")
	if err != nil {
		return fmt.Errorf("%w: parsing hook script: %w", ErrHookFailed, err)
	}

	vars := append(os.Environ(),
		"MAYABUNDLE_PLUGIN_NAME="+env.PluginName,
		"MAYABUNDLE_PLUGIN_DIR="+env.PluginDir,
		"MAYABUNDLE_PLUGIN_FILE="+env.PluginFile,
	)
	runner, err := interp.New(
		interp.Dir(workDir),
		interp.Env(expand.ListEnviron(vars...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return fmt.Errorf("creating hook interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		return fmt.Errorf("%w: %w", ErrHookFailed, err)
	}
	return nil
}
