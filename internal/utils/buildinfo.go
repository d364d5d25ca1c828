package utils

import "runtime/debug"

const (
	unknownVersion        = "unknown"
	developmentVersion    = "(devel)"
	revisionSettingKey    = "vcs.revision"
	modifiedSettingKey    = "vcs.modified"
	shortRevisionLength   = 12
	modifiedVersionSuffix = "-dirty"
)

// GetApplicationVersion returns the module version of the running binary. Local
// builds report the VCS revision recorded by the Go toolchain instead.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	return versionFromBuildInfo(buildInfo)
}

func versionFromBuildInfo(buildInfo *debug.BuildInfo) string {
	if moduleVersion := buildInfo.Main.Version; moduleVersion != "" && moduleVersion != developmentVersion {
		return moduleVersion
	}
	revision := ""
	modified := false
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case revisionSettingKey:
			revision = setting.Value
		case modifiedSettingKey:
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return unknownVersion
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	if modified {
		revision += modifiedVersionSuffix
	}
	return revision
}
