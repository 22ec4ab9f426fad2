// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/lxcui/buildvars"
	"github.com/toeirei/lxcui/internal/config"
	"github.com/toeirei/lxcui/internal/entity"
	"github.com/toeirei/lxcui/internal/host"
	"github.com/toeirei/lxcui/internal/i18n"
	"github.com/toeirei/lxcui/internal/logging"
	"github.com/toeirei/lxcui/internal/lxc"
	"github.com/toeirei/lxcui/internal/sizer"
	"github.com/toeirei/lxcui/ui/terminal"
	"github.com/toeirei/lxcui/ui/views"
	"golang.org/x/term"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)
var cfgFile string
var verbose bool

var appConfig config.Config

// startTimeout bounds the wait for the first window size.
const startTimeout = 2 * time.Second

// isTerminal reports whether stdin and stdout are both a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// openBackend returns the backend and host selected by c.
var openBackend = func(c config.Config) (entity.Backend, entity.Host) {
	if c.Demo {
		return demoBackend()
	}
	h := host.New(c.Host.Proc, c.LXC.Cache)
	b := lxc.New(c.LXC.Path, h)
	if c.LXC.DefaultImage != "" {
		b.DefaultImage = c.LXC.DefaultImage
	}
	return b, h
}

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	// Subcommands report on stderr; the UI switches to the log file.
	logging.SetOutput(cmd.ErrOrStderr())

	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), optionalConfigPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if verbose {
		logging.SetDebug(true)
	} else if err := logging.SetLevel(appConfig.Log.Level); err != nil {
		logging.Warnf("%v", err)
	}
	if appConfig.LXC.WaitTimeout <= 0 {
		appConfig.LXC.WaitTimeout = config.Default().LXC.WaitTimeout
	}

	i18n.Init(appConfig.Language)
	return nil
}

// Execute runs the CLI entrypoint. main should call this function and
// handle process exit.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	// Make sure the user-provided file exists to avoid unwanted behavior.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// configExists reports whether LoadConfig found a file to read.
func configExists() bool {
	candidates := []string{"lxcui.yaml"}
	for _, system := range []bool{false, true} {
		if p, err := config.GetConfigPath(system); err == nil {
			candidates = append(candidates, p)
		}
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lxcui",
		Short: "lxcui manages the LXC containers of this host from the terminal.",
		Long: `lxcui lists the LXC containers of this host and lets you start, stop,
freeze, clone, rename and destroy them, edit their network interfaces and
limits and manage their snapshots.

Running without a subcommand will launch the interactive UI.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupDefaultServices,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd)
		},
	}

	cmd.Version = compositeVersion()

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `UI language ("en", "de")`)
	cmd.PersistentFlags().Bool("demo", false, "Use an in-memory demo backend instead of the lxc tools")
	cmd.PersistentFlags().String("lxc.path", lxc.DefaultPath, "Directory holding the containers")

	cmd.AddCommand(newListCmd(), newExportCmd(), newDestroyCmd(), newConfigCmd(), newVersionCmd())
	return cmd
}

// runUI hands the terminal to the container list until the user quits.
func runUI(cmd *cobra.Command) error {
	if !isTerminal() {
		return errors.New(i18n.T("cli.not_terminal"))
	}

	if !configExists() && !cmd.Flags().Changed("config") {
		if path, err := config.WriteConfigFile(&appConfig, false); err != nil {
			// The app can run on defaults.
			logging.Warnf("could not write default config file: %v", err)
		} else {
			logging.Infof("wrote default config to %s", path)
		}
	}

	logFile := appConfig.Log.File
	if logFile == "" {
		var err error
		if logFile, err = logging.DefaultFile(); err != nil {
			logging.Warnf("no log file: %v", err)
		}
	}
	if logFile != "" {
		if c, err := logging.OpenFile(logFile); err != nil {
			logging.Warnf("%v", err)
		} else {
			defer func() { _ = c.Close() }()
		}
	}
	logging.Infof("lxcui %s starting", compositeVersion())

	backend, hst := openBackend(appConfig)
	worker := sizer.New(nil)
	defer func() { _ = worker.Close() }()

	t := terminal.New()
	t.Start(startTimeout)
	defer func() {
		if err := t.Close(); err != nil {
			logging.Errorf("terminal: %v", err)
		}
	}()

	app := views.New(backend, hst, t, worker)
	app.WaitTimeout = time.Duration(appConfig.LXC.WaitTimeout) * time.Second
	err := app.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// compositeVersion is the version with commit and build date when known.
func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	composite := v
	if c != "" && c != "dev" {
		composite = composite + " (" + c + ")"
	}
	if d != "" {
		composite = composite + " built: " + d
	}
	return composite
}

// resolveBuildVersion determines the version, commit and build date using
// link-time variables first and the embedded module build info second.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if infoLocal, found := debug.ReadBuildInfo(); found {
			info = infoLocal
		}
	}

	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// If Main doesn't contain the version (some build paths), try to
		// find our module in the dependencies and use that version.
		if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/toeirei/lxcui" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// As a last resort show the commit provided via ldflags.
	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
