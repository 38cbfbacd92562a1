package messages

// Publish run messages. Log lines are lowercase; they are rendered after the "publish" heading.
const (
	PublishSame            = "your local version is the same as your published version: publish will do nothing"
	PublishLocalLower      = "your local version is smaller than your published version: publish will do nothing"
	PublishNoTrigger       = "your local version does not satisfy your --on-[major|minor|patch|build] options"
	PublishUnconditional   = "local version is ahead of the registry"
	PublishTriggerMatchFmt = "local version is ahead of the registry with a %s change"
	PublishFirstRelease    = "you have not published yet your first version of this module: publish will do nothing\n" +
		"you must publish manually the first release of your module"

	PublishUsingTagFmt         = "Using tag %s"
	PublishPublishedOK         = "published ok"
	PublishDryRunFmt           = "dry run: would publish %s@%s"
	PublishDryRunAddUser       = "dry run: would authenticate before publishing (CI context)"
	PublishAuthenticating      = "CI context detected: adding registry user"
	PublishMissingCreds        = "registry credentials are incomplete"
	PublishMissingCredsFmt     = "CI context detected but registry credentials are incomplete; set %s, %s and %s"
	PublishRemoteInvalidFmt    = "registry version %q for %s is not a valid version: %v"
	PublishLocalInvalidFmt     = "local version %q is not a valid version: %v"
	PublishTimeoutFmt          = "%s timed out after %s"
	PublishLookupFailedFmt     = "lookup of %s failed: %v"
	PublishAddUserFailedFmt    = "add-user failed: %v"
	PublishPublishFailedFmt    = "publish failed: %v"
	PublishStateTransitionFmt  = "state %s"
	PublishVersionsComparedFmt = "local %s, remote %s"
)

// Registry operation names used in timeout messages.
const (
	PublishOpLookup  = "registry lookup"
	PublishOpAddUser = "add-user"
	PublishOpPublish = "publish"
)
