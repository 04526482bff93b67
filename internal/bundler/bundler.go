// SPDX-License-Identifier: MPL-2.0

package bundler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mayabundle/internal/codegen"
	"mayabundle/internal/issue"
	"mayabundle/internal/launch"
	"mayabundle/internal/plan"
	"mayabundle/internal/pymod"
	"mayabundle/internal/scan"
	"mayabundle/pkg/platform"
	"mayabundle/pkg/pyident"
)

// ErrInvalidOptions is returned when required bundle options are missing.
var ErrInvalidOptions = errors.New("invalid bundle options")

type (
	// Options describes one bundle run.
	Options struct {
		// RootFile is the tool's main Python file.
		RootFile string
		// OutputDir receives the plugin file and support folder.
		OutputDir string
		// PluginName names the Maya command; defaults to the root file stem.
		PluginName string
		// LaunchExpression is the dotted launch call, e.g.
		// "maya_tools.utilities.boxy.boxy_tool.BoxyTool().show()".
		LaunchExpression string
		// Dockable bundles the tool as a workspace control.
		Dockable bool
		// ScriptsRoots are the import search roots; defaults to the root
		// file's directory.
		ScriptsRoots []string
		// IgnoreGlobs prune files from the import graph.
		IgnoreGlobs []string
		// IconPath is an optional icon to bundle.
		IconPath string
		// MenuParent, when set, registers a menu item on plugin load.
		MenuParent string
		// ShelfName, when set, registers a shelf button on plugin load.
		ShelfName string
		// Vendor is recorded on the plugin registration.
		Vendor string
		// Hook is an optional post-bundle shell script.
		Hook string
	}

	// Result reports what a bundle run produced.
	Result struct {
		PluginName   string
		PluginDir    string
		PluginFile   string
		ShelfScript  string
		MenuScript   string
		ReadmePath   string
		ManifestPath string
		IconFile     string
		FileCount    int
		Descriptor   launch.Descriptor
		Duration     time.Duration
	}

	// Bundler runs bundle operations.
	Bundler struct {
		gen    *codegen.Generator
		logger *slog.Logger
		now    func() time.Time
		hookIO io.Writer
	}

	// Option configures a Bundler.
	Option func(*Bundler)
)

// WithLogger sets the bundler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bundler) { b.logger = logger }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *Bundler) { b.now = now }
}

// WithHookOutput directs hook stdout/stderr; defaults to os.Stderr.
func WithHookOutput(w io.Writer) Option {
	return func(b *Bundler) { b.hookIO = w }
}

// New creates a Bundler.
func New(opts ...Option) (*Bundler, error) {
	gen, err := codegen.New()
	if err != nil {
		return nil, err
	}
	b := &Bundler{
		gen:    gen,
		logger: slog.Default(),
		now:    time.Now,
		hookIO: os.Stderr,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Bundle performs one full bundle run.
func (b *Bundler) Bundle(ctx context.Context, opts Options) (*Result, error) {
	start := b.now()

	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}

	desc, err := b.resolveLaunch(opts)
	if err != nil {
		return nil, err
	}

	b.logger.Info("scanning import graph",
		"root", opts.RootFile, "searchRoots", opts.ScriptsRoots)
	scanner := scan.NewScanner(opts.ScriptsRoots,
		scan.WithIgnoreGlobs(opts.IgnoreGlobs...),
		scan.WithLogger(b.logger))
	files, err := scanner.Scan(opts.RootFile)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("scan import graph").
			WithResource(opts.RootFile).
			WithSuggestion("Check that the root file exists and is readable").
			Wrap(err).
			BuildError()
	}

	copyPlan, err := plan.Build(files, opts.ScriptsRoots)
	if err != nil {
		return nil, issue.WrapWithOperation(err, "derive bundle plan")
	}
	b.logger.Info("bundle plan derived", "files", copyPlan.Len())

	pluginDir := filepath.Join(opts.OutputDir, opts.PluginName)
	if err := b.preparePluginDir(pluginDir); err != nil {
		return nil, err
	}

	records, err := copyPlanFiles(copyPlan, pluginDir)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("copy bundle files").
			WithResource(pluginDir).
			WithSuggestion("Check the output directory is writable").
			Wrap(err).
			BuildError()
	}

	iconFile, err := b.bundleIcon(opts, pluginDir)
	if err != nil {
		return nil, err
	}

	result := &Result{
		PluginName: opts.PluginName,
		PluginDir:  pluginDir,
		IconFile:   iconFile,
		FileCount:  copyPlan.Len(),
		Descriptor: desc,
	}
	if err := b.generateFiles(opts, desc, iconFile, result); err != nil {
		return nil, err
	}

	manifest := &Manifest{
		BundlerVersion: codegen.Version,
		GeneratedAt:    b.now().UTC(),
		PluginName:     opts.PluginName,
		Launch: LaunchRecord{
			Expression: desc.Invocation.Expression,
			Layout:     desc.Layout.String(),
			UIScript:   desc.Invocation.UIScriptRef,
			Dockable:   desc.Invocation.Dockable,
		},
		Icon:  iconFile,
		Files: records,
	}
	manifestPath, err := WriteManifest(pluginDir, manifest)
	if err != nil {
		return nil, issue.WrapWithContext(err, "write bundle manifest", pluginDir)
	}
	result.ManifestPath = manifestPath

	if opts.Hook != "" {
		b.logger.Info("running post-bundle hook")
		env := hookEnv{
			PluginName: opts.PluginName,
			PluginDir:  pluginDir,
			PluginFile: result.PluginFile,
		}
		if err := runHook(ctx, opts.Hook, opts.OutputDir, env, b.hookIO, b.hookIO); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("run post-bundle hook").
				WithResource(opts.PluginName).
				WithSuggestion("Run the hook script manually to reproduce the failure").
				Wrap(err).
				BuildError()
		}
	}

	result.Duration = b.now().Sub(start)
	b.logger.Info("bundle complete",
		"plugin", opts.PluginName, "files", result.FileCount,
		"duration", result.Duration)
	return result, nil
}

// normalize fills defaults and validates options.
func normalize(opts Options) (Options, error) {
	if opts.RootFile == "" {
		return opts, fmt.Errorf("%w: root file is required", ErrInvalidOptions)
	}
	if opts.OutputDir == "" {
		return opts, fmt.Errorf("%w: output directory is required", ErrInvalidOptions)
	}
	if opts.LaunchExpression == "" {
		return opts, fmt.Errorf("%w: launch expression is required", ErrInvalidOptions)
	}

	abs, err := filepath.Abs(opts.RootFile)
	if err != nil {
		return opts, fmt.Errorf("resolving root file: %w", err)
	}
	opts.RootFile = abs

	if opts.PluginName == "" {
		opts.PluginName = strings.TrimSuffix(
			filepath.Base(opts.RootFile), filepath.Ext(opts.RootFile))
	}
	// The plugin name becomes a Python class and Maya command name.
	name := pyident.Identifier(opts.PluginName)
	if ok, errs := name.IsValid(); !ok {
		return opts, fmt.Errorf("%w: plugin name %q: %v",
			ErrInvalidOptions, opts.PluginName, errors.Join(errs...))
	}
	// Bundles often land on shared drives mounted from Windows workstations,
	// where a reserved device name makes the plugin file unopenable.
	if platform.IsWindowsReservedName(opts.PluginName) {
		return opts, fmt.Errorf("%w: plugin name %q is a Windows reserved file name",
			ErrInvalidOptions, opts.PluginName)
	}

	if len(opts.ScriptsRoots) == 0 {
		opts.ScriptsRoots = []string{filepath.Dir(opts.RootFile)}
	}
	for i, root := range opts.ScriptsRoots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return opts, fmt.Errorf("resolving search root %q: %w", root, err)
		}
		opts.ScriptsRoots[i] = abs
	}

	if opts.Vendor == "" {
		opts.Vendor = "mayabundle"
	}
	return opts, nil
}

// resolveLaunch resolves the launch expression against the search roots.
func (b *Bundler) resolveLaunch(opts Options) (launch.Descriptor, error) {
	locator, err := pymod.NewLocator(opts.ScriptsRoots...)
	if err != nil {
		return launch.Descriptor{}, err
	}
	resolver := launch.NewResolver(pymod.NewProber(locator))
	desc, err := resolver.Resolve(opts.LaunchExpression, opts.Dockable)
	if err != nil {
		return launch.Descriptor{}, issue.NewErrorContext().
			WithOperation("resolve launch expression").
			WithResource(opts.LaunchExpression).
			WithSuggestion("The expression must end with 'Class().method()'").
			WithSuggestion("For dockable tools, define UI_SCRIPT in the tool module or its package __init__.py").
			Wrap(err).
			BuildError()
	}
	b.logger.Info("launch expression resolved",
		"layout", desc.Layout.String(), "uiScriptPath", string(desc.UIScriptPath))
	return desc, nil
}

// preparePluginDir removes a stale plugin directory and recreates it.
func (b *Bundler) preparePluginDir(pluginDir string) error {
	if _, err := os.Stat(pluginDir); err == nil {
		b.logger.Info("removing existing plugin directory", "dir", pluginDir)
		if err := os.RemoveAll(pluginDir); err != nil {
			return issue.WrapWithContext(err, "remove existing plugin directory", pluginDir)
		}
	}
	if err := os.MkdirAll(filepath.Join(pluginDir, plan.ScriptsDirName), 0o755); err != nil {
		return issue.WrapWithContext(err, "create plugin directory", pluginDir)
	}
	return nil
}

func (b *Bundler) bundleIcon(opts Options, pluginDir string) (string, error) {
	if opts.IconPath == "" {
		return "", nil
	}
	if err := ValidateIcon(opts.IconPath); err != nil {
		return "", issue.NewErrorContext().
			WithOperation("validate icon").
			WithResource(opts.IconPath).
			WithSuggestion("Use one of the supported formats: " + supportedIconExtensions()).
			Wrap(err).
			BuildError()
	}
	name := filepath.Base(opts.IconPath)
	dest := filepath.Join(pluginDir, "icons", name)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", issue.WrapWithContext(err, "create icons directory", pluginDir)
	}
	if err := copyFile(opts.IconPath, dest); err != nil {
		return "", issue.WrapWithContext(err, "copy icon", opts.IconPath)
	}
	return name, nil
}

// generateFiles renders the plugin entry point, the helper scripts, and
// the README into the bundle.
func (b *Bundler) generateFiles(opts Options, desc launch.Descriptor, iconFile string, result *Result) error {
	data := codegen.NewPluginData(opts.PluginName, opts.Vendor, desc, b.now())
	data.MenuParent = opts.MenuParent
	data.ShelfName = opts.ShelfName
	data.IconFileName = iconFile

	pluginSrc, err := b.gen.PluginFile(data)
	if err != nil {
		return issue.WrapWithOperation(err, "generate plugin file")
	}
	// The plugin file sits next to the support folder so Maya's Plug-in
	// Manager lists it at the top level.
	result.PluginFile = filepath.Join(opts.OutputDir, opts.PluginName+".py")
	if err := os.WriteFile(result.PluginFile, pluginSrc, 0o644); err != nil {
		return issue.WrapWithContext(err, "write plugin file", result.PluginFile)
	}

	scriptData := codegen.ScriptData{
		PluginName:   opts.PluginName,
		ShelfName:    opts.ShelfName,
		MenuParent:   opts.MenuParent,
		IconFileName: iconFile,
	}
	if opts.ShelfName != "" {
		src, err := b.gen.ShelfScript(scriptData)
		if err != nil {
			return issue.WrapWithOperation(err, "generate shelf script")
		}
		result.ShelfScript = filepath.Join(result.PluginDir, opts.PluginName+"_shelf.py")
		if err := os.WriteFile(result.ShelfScript, src, 0o644); err != nil {
			return issue.WrapWithContext(err, "write shelf script", result.ShelfScript)
		}
	}
	if opts.MenuParent != "" {
		src, err := b.gen.MenuScript(scriptData)
		if err != nil {
			return issue.WrapWithOperation(err, "generate menu script")
		}
		result.MenuScript = filepath.Join(result.PluginDir, opts.PluginName+"_menu.py")
		if err := os.WriteFile(result.MenuScript, src, 0o644); err != nil {
			return issue.WrapWithContext(err, "write menu script", result.MenuScript)
		}
	}

	readme, err := b.gen.Readme(codegen.ReadmeData{
		PluginName: opts.PluginName,
		MenuParent: opts.MenuParent,
		ShelfName:  opts.ShelfName,
		Dockable:   desc.Invocation.Dockable,
	})
	if err != nil {
		return issue.WrapWithOperation(err, "generate README")
	}
	result.ReadmePath = filepath.Join(result.PluginDir, "README.md")
	if err := os.WriteFile(result.ReadmePath, readme, 0o644); err != nil {
		return issue.WrapWithContext(err, "write README", result.ReadmePath)
	}
	return nil
}

// copyPlanFiles copies every plan entry into the plugin directory and
// returns the manifest records.
func copyPlanFiles(p *plan.Plan, pluginDir string) ([]FileRecord, error) {
	records := make([]FileRecord, 0, p.Len())
	for _, entry := range p.Entries {
		dest := filepath.Join(pluginDir, entry.Dest())
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, err
		}
		if err := copyFile(entry.Source, dest); err != nil {
			return nil, err
		}
		info, err := os.Stat(dest)
		if err != nil {
			return nil, err
		}
		records = append(records, FileRecord{
			Path: filepath.ToSlash(entry.Dest()),
			Size: info.Size(),
		})
	}
	return records, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
