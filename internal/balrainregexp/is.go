package balrainregexp

func IsApplicationID(name string) bool {
	return ApplicationID.MatchString(name)
}

func IsJavaVersion(name string) bool {
	return JavaVersion.MatchString(name)
}

func IsPluginID(name string) bool {
	return PluginID.MatchString(name)
}

// IsAPK reports whether name, a file name without its
// directory, names an Android package.
func IsAPK(name string) bool {
	return APK.MatchString(name)
}

func IsProguardFile(name string) bool {
	return ProguardFile.MatchString(name)
}
