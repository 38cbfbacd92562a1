package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/publish-guard/internal/config"
	"github.com/conn-castle/publish-guard/internal/credentials"
	"github.com/conn-castle/publish-guard/internal/envfile"
	"github.com/conn-castle/publish-guard/internal/gate"
	"github.com/conn-castle/publish-guard/internal/logging"
	"github.com/conn-castle/publish-guard/internal/manifest"
	"github.com/conn-castle/publish-guard/internal/messages"
	"github.com/conn-castle/publish-guard/internal/publish"
	"github.com/conn-castle/publish-guard/internal/registry"
	"github.com/conn-castle/publish-guard/internal/terminal"
	"github.com/conn-castle/publish-guard/internal/version"
)

var (
	getwd             = os.Getwd
	newRegistryClient = defaultRegistryClient
)

var processEnv credentials.Env = credentials.OSEnv{}

const (
	flagOnMajor  = "on-major"
	flagOnMinor  = "on-minor"
	flagOnPatch  = "on-patch"
	flagOnBuild  = "on-build"
	flagTag      = "tag"
	flagDryRun   = "dry-run"
	flagTest     = "test"
	flagLogLevel = "loglevel"
	flagConfig   = "config"
	flagManifest = "manifest"
)

type rootFlags struct {
	onMajor  bool
	onMinor  bool
	onPatch  bool
	onBuild  bool
	tag      string
	dryRun   bool
	test     bool
	logLevel string
	config   string
	manifest string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&flags.onMajor, flagOnMajor, false, messages.FlagOnMajor)
	f.BoolVar(&flags.onMinor, flagOnMinor, false, messages.FlagOnMinor)
	f.BoolVar(&flags.onPatch, flagOnPatch, false, messages.FlagOnPatch)
	f.BoolVar(&flags.onBuild, flagOnBuild, false, messages.FlagOnBuild)
	f.StringVar(&flags.tag, flagTag, "", messages.FlagTag)
	f.BoolVar(&flags.dryRun, flagDryRun, false, messages.FlagDryRun)
	f.BoolVar(&flags.test, flagTest, false, messages.FlagTest)
	_ = f.MarkHidden(flagTest)
	f.StringVar(&flags.logLevel, flagLogLevel, logging.DefaultLevel.String(), messages.FlagLogLevel)
	f.StringVar(&flags.config, flagConfig, "", messages.FlagConfig)
	f.StringVar(&flags.manifest, flagManifest, "", messages.FlagManifest)
	f.BoolP("version", "v", false, messages.RootVersionFlag)
	f.BoolP("help", "?", false, messages.RootHelpFlag)
	return cmd
}

// runPublish merges config and flags, runs the orchestrator and maps its outcome to an error.
func runPublish(cmd *cobra.Command, flags rootFlags) error {
	cwd, err := getwd()
	if err != nil {
		return fmt.Errorf(messages.CLIWorkingDirFmt, err)
	}

	level, err := logging.ParseLevel(flags.logLevel)
	if err != nil {
		return err
	}
	stderr := cmd.ErrOrStderr()
	logger := logging.New(stderr, level, terminal.SupportsColor(stderr))
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(cwd, flags.config)
	if err != nil {
		return err
	}

	opts, err := cfg.GateOptions()
	if err != nil {
		return err
	}
	for _, on := range []struct {
		set       bool
		component version.Component
	}{
		{flags.onMajor, version.Major},
		{flags.onMinor, version.Minor},
		{flags.onPatch, version.Patch},
		{flags.onBuild, version.Build},
	} {
		if on.set {
			opts = opts.With(on.component)
		}
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}

	tag := cfg.Publish.Tag
	if cmd.Flags().Changed(flagTag) {
		tag = flags.tag
	}
	tag = strings.TrimSpace(tag)

	manifestPath := cfg.ManifestPath(cwd)
	if strings.TrimSpace(flags.manifest) != "" {
		manifestPath = flags.manifest
		if !filepath.IsAbs(manifestPath) {
			manifestPath = filepath.Join(cwd, manifestPath)
		}
	}

	env, err := buildEnv(cfg, cwd)
	if err != nil {
		return err
	}

	client, err := newRegistryClient(cfg, filepath.Dir(manifestPath), cmd.OutOrStdout(), stderr)
	if err != nil {
		return err
	}

	orch := &publish.Orchestrator{
		Registry:     client,
		Manifests:    manifest.FileReader{},
		Resolver:     cfg.Resolver(),
		Env:          env,
		Logger:       logger,
		ManifestPath: manifestPath,
		Options:      opts,
		Tag:          tag,
		Timeout:      timeout,
		DryRun:       flags.dryRun || flags.test,
	}
	logger.Debug(fmt.Sprintf(messages.CLITriggersFmt, describeOptions(opts)))
	out := orch.Run(cmd.Context())
	printStatus(cmd.OutOrStdout(), out)
	if out.Failed() {
		return &SilentExitError{Code: out.ExitCode()}
	}
	return nil
}

// loadConfig reads an explicit config path, or the optional default in cwd.
func loadConfig(cwd string, path string) (*config.Config, error) {
	if strings.TrimSpace(path) != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		return config.Load(path)
	}
	return config.LoadOptional(config.DefaultPath(cwd))
}

// buildEnv layers the configured env file under the process environment.
func buildEnv(cfg *config.Config, cwd string) (credentials.Env, error) {
	path, err := cfg.EnvFilePath(cwd)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return processEnv, nil
	}
	values, err := envfile.Load(path)
	if err != nil {
		return nil, err
	}
	return credentials.Overlay{Primary: processEnv, Fallback: credentials.MapEnv(values)}, nil
}

// defaultRegistryClient returns the npm-backed client configured from cfg.
func defaultRegistryClient(cfg *config.Config, dir string, stdout io.Writer, stderr io.Writer) (registry.Client, error) {
	npm := registry.NewNPM(cfg.Registry.NPM, dir)
	npm.Stdout = stdout
	npm.Stderr = stderr
	if url := strings.TrimSpace(cfg.Registry.URL); url != "" {
		npm.SetConfig("registry", url)
	}
	userConfig, err := cfg.UserConfigPath()
	if err != nil {
		return nil, err
	}
	if userConfig != "" {
		npm.SetConfig("userconfig", userConfig)
	}
	return npm, nil
}

func describeOptions(opts gate.Options) string {
	if opts.Empty() {
		return messages.CLINoTriggers
	}
	return opts.String()
}

// printStatus writes the one-line summary of a publish or dry run.
func printStatus(w io.Writer, out publish.Outcome) {
	switch {
	case out.Published:
		_, _ = fmt.Fprint(w, color.GreenString(messages.CLIPublishedFmt, out.Name, out.Local))
	case out.DryRun && out.Decision != nil && out.Decision.ShouldPublish:
		_, _ = fmt.Fprint(w, color.CyanString(messages.CLIDryRunFmt, out.Name, out.Local))
	}
}
