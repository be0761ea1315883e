package cli

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vankamp/pkg/buildinfo"
	"github.com/matzehuels/vankamp/pkg/cache"
	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/pipeline"
)

// appName names the binary and its cache directory.
const appName = "vankamp"

// Log levels accepted by [New].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Process exit codes returned by [ExitCode].
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2 // bad flags, config or input files
	ExitStructural  = 3 // graph or drawing cannot be refined
	ExitInterrupted = 130
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Vankamp tidies planar Van Kampen diagrams",
		Long: `Vankamp moves the vertices of a planar drawing so that its cells become
round, even and convex, without ever introducing an edge crossing.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
	}

	root.AddCommand(c.refineCommand())
	root.AddCommand(c.cellsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute runs the command line given by args.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// ExitCode maps an error returned by [CLI.Execute] to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case vkerr.IsStructural(err):
		return ExitStructural
	}
	switch vkerr.GetCode(err) {
	case vkerr.ErrCodeInvalidInput, vkerr.ErrCodeInvalidConfig,
		vkerr.ErrCodeInvalidFormat, vkerr.ErrCodeFileNotFound:
		return ExitUsage
	}
	return ExitFailure
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	// Scope by version so a new release never reuses layouts refined by
	// an older optimizer.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache returns the on-disk cache, or a no-op cache when caching is
// disabled or no cache directory can be determined.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/vankamp/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output ends in a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range formatExtensions() {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// formatExtensions returns the dotted extension of every format, longest
// first so that ".graphviz.svg" wins over ".svg".
func formatExtensions() []string {
	exts := make([]string, 0, len(pipeline.ValidFormats))
	for format := range pipeline.ValidFormats {
		exts = append(exts, "."+pipeline.FormatExtension(format))
	}
	slices.SortFunc(exts, func(a, b string) int {
		if n := cmp.Compare(len(b), len(a)); n != 0 {
			return n
		}
		return strings.Compare(a, b)
	})
	return exts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// artifactWriteParams describes the rendered outputs of one command.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each rendered format to disk and returns the paths
// written, in format order. A single format with an explicit output path is
// written to that path unchanged. The input file is never overwritten.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if len(p.formats) == 1 && p.output != "" {
		if filepath.Clean(p.output) == filepath.Clean(p.input) {
			return nil, vkerr.New(vkerr.ErrCodeInvalidConfig, "output would overwrite input %s", p.input)
		}
		if err := writeFile(p.output, p.artifacts[p.formats[0]]); err != nil {
			return nil, err
		}
		return []string{p.output}, nil
	}

	base := basePath(p.output, p.input)
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := base + "." + pipeline.FormatExtension(format)
		if filepath.Clean(path) == filepath.Clean(p.input) {
			return paths, vkerr.New(vkerr.ErrCodeInvalidConfig, "%s output would overwrite input %s (use --output)", format, p.input)
		}
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if err := vkerr.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
