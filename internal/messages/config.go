package messages

// Config messages for configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %w"
	ConfigValidationGuidance  = "(see the [publish], [registry] and [ci] tables in .publish.toml)"

	ConfigTriggerInvalidFmt      = "%s: publish.triggers contains invalid trigger %q (allowed: on-major, on-minor, on-patch, on-build)"
	ConfigTimeoutInvalidFmt      = "%s: publish.timeout %q is not a valid duration"
	ConfigTimeoutNegativeFmt     = "%s: publish.timeout must not be negative"
	ConfigNPMRequiredFmt         = "%s: registry.npm must not be empty"
	ConfigCIEnvRequiredFmt       = "%s: ci.%s must not be empty"
	ConfigCIEnvDuplicateFmt      = "%s: ci.%s and ci.%s name the same variable %q"
	ConfigExpandUserConfigFmt    = "expand registry.userconfig %q: %w"
	ConfigExpandEnvFileFmt       = "expand ci.env_file %q: %w"
	ConfigMissingEnvFileFmt      = "missing env file %s: %w"
	ConfigInvalidEnvFileFmt      = "invalid env file %s: %w"
	ConfigEnvfileLineErrorFmt    = "line %d: %w"
	ConfigEnvfileReadFailedFmt   = "read env content: %w"
	ConfigEnvfileMissingEquals   = "missing '=' separator"
	ConfigEnvfileEmptyKey        = "empty key"
	ConfigEnvfileUnterminatedFmt = "unterminated %s quote"
)
