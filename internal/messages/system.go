package messages

// Messages for the manifest reader, version parser, registry client and logger.
const (
	// ManifestUnreadable is the sentinel text for a missing or malformed manifest.
	ManifestUnreadable      = "publish can only be performed from the root of npm modules (where the package.json resides)"
	ManifestMissingVersion  = "you have not defined a version in your npm module, check your package.json"
	ManifestMissingName     = "package.json has no name"
	ManifestReadFailedFmt   = "%w: read %s: %v"
	ManifestInvalidJSONFmt  = "%w: parse %s: %v"
	ManifestMissingNameFmt  = "%w: %s"
	ManifestMissingFieldFmt = "%w (%s)"

	// VersionRequired reports an empty version string.
	VersionRequired   = "version is required"
	VersionInvalidFmt = "invalid version %q: %w"

	// GateUnknownTriggerFmt reports a trigger name outside on-major, on-minor, on-patch, on-build.
	GateUnknownTriggerFmt = "unknown trigger %q"

	// RegistryNotFound is the sentinel text for a package with no published version.
	RegistryNotFound         = "package not found in registry"
	RegistryNotFoundFmt      = "%w: %s"
	RegistryCommandErrFmt    = "%s exited with code %d: %s"
	RegistryCommandNoCodeFmt = "%s failed: %v"
	RegistryDecodeVersionFmt = "decode registry version for %s: %w"
	RegistryEmptyVersionFmt  = "registry returned no version for %s"
	RegistryCanceledFmt      = "%s: %w"
	RegistryNameRequired     = "package name is required"

	// LoggingInvalidLevelFmt reports an unknown --loglevel value.
	LoggingInvalidLevelFmt = "invalid log level %q (allowed: silent, error, warn, info, verbose)"
)
