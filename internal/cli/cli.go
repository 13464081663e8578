package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/figx/pkg/buildinfo"
	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/codec"
	"github.com/matzehuels/figx/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "figx"

	// keychainService is the Keychain service name under which every
	// remote's resolved access token is stored, keyed by remote id.
	keychainService = "figx"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

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

// RootCommand creates the root cobra command with all subcommands
// registered, and global flags -v (repeatable verbosity) and -j N
// (parallelism) wired per spec's CLI contract (spec §6).
func (c *CLI) RootCommand() *cobra.Command {
	var verbosity int

	root := &cobra.Command{
		Use:          "figx",
		Short:        "figx imports design assets into your source tree",
		Long:         `figx fetches design components from a remote design service and materializes them as images, Kotlin ImageVector sources, or Android drawables, addressed by Bazel-style labels.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case verbosity >= 1:
				c.SetLogLevel(LogDebug)
			default:
				c.SetLogLevel(LogInfo)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	root.PersistentFlags().IntP("jobs", "j", runtime.NumCPU(), "maximum number of actions to run in parallel")

	root.AddCommand(c.infoCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.explainCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.cleanCommand())
	root.AddCommand(c.authCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Workspace / cache / collaborator wiring
// =============================================================================

// newCache opens the on-disk evaluation cache at the workspace's cache
// directory (spec §4.3: file backend is the CLI's default tier).
func newCache(ws *config.Workspace) (cache.Cache, error) {
	return cache.NewFileCache(ws.Context.CacheDir)
}

// loadWorkspace discovers and parses the workspace rooted above the
// current directory, the entry point shared by every command that needs
// typed configuration.
func loadWorkspace() (*config.Workspace, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return config.LoadWorkspace(cwd)
}

// collaborators bundles the concrete external collaborators a pipeline
// run needs: HTTP, image/SVG codecs, and the keychain used to resolve
// remote access tokens (spec §1: these live outside the core).
type collaborators struct {
	doer     codec.HTTPDoer
	images   codec.ImageCodec
	svg      codec.SVGRasterizer
	keychain *FileKeychain
}

// defaultHTTPDoer returns the collaborator used for one-off HTTP calls
// (auth's token-verification round trip) that don't need the rest of the
// collaborators bundle.
func defaultHTTPDoer() codec.HTTPDoer {
	return http.DefaultClient
}

func newCollaborators() (*collaborators, error) {
	kc, err := NewFileKeychain()
	if err != nil {
		return nil, err
	}
	return &collaborators{
		doer:     http.DefaultClient,
		images:   codec.NewImagingCodec(),
		svg:      codec.NewOksvgRasterizer(),
		keychain: kc,
	}, nil
}

// resolveToken resolves the access token for remote, trying its priority
// list (literal, env, keychain) in order. ignoreMissing lets read-only
// commands (explain) proceed without a token.
func resolveToken(remote config.RemoteSource, kc codec.Keychain, ignoreMissing bool) (string, error) {
	return remote.AccessToken.Resolve(kc, keychainService, remote.ID, ignoreMissing)
}
