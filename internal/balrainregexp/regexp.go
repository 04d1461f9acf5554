package balrainregexp

import "regexp"

var (
	ApplicationID = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)+$`)
	JavaVersion   = regexp.MustCompile(`^(1\.[6-8]|[1-9][0-9]?)$`)
	PluginID      = regexp.MustCompile(`^[a-zA-Z][\w-]*(\.[a-zA-Z][\w-]*)+$`)

	APK          = regexp.MustCompile(`(?i)^[^/\\]+\.apk$`)
	ProguardFile = regexp.MustCompile(`(?i)^[\w/.-]+\.(pro|txt|cfg)$`)
)
