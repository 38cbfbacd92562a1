package messages

// CLI messages for the publish command.
const (
	// RootUse is the CLI command name.
	RootUse = "publish"
	// RootShort is the short description for the root command.
	RootShort = "Publish the current module when its version is ahead of the registry"
	RootLong  = "Publishes the current module if the version of the local module is higher than the one in the registry.\n\n" +
		"Without --on-* options any version increase publishes. With one or more --on-* options, publishing\n" +
		"only happens when one of the selected version components changed."

	RootVersionFlag = "Print the version of publish"
	RootHelpFlag    = "Print this help"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	FlagOnMajor  = "Publishes on major version changes"
	FlagOnMinor  = "Publishes on minor version changes"
	FlagOnPatch  = "Publishes on patch version changes"
	FlagOnBuild  = "Publishes on build version changes"
	FlagTag      = "Registers the published package with the given dist-tag"
	FlagDryRun   = "Decide and report without authenticating or publishing"
	FlagTest     = "Alias for --dry-run"
	FlagLogLevel = "Log level: silent, error, warn, info, verbose"
	FlagConfig   = "Path to the publish config file (default .publish.toml when present)"
	FlagManifest = "Path to the package manifest (default package.json)"

	// CLIPublishedFmt is the status line printed after a successful publish.
	CLIPublishedFmt  = "+ %s@%s\n"
	CLIDryRunFmt     = "~ %s@%s (dry run)\n"
	CLIWorkingDirFmt = "resolve working directory: %w"
	CLITriggersFmt   = "triggers: %s"
	CLINoTriggers    = "none (any version increase publishes)"
)
