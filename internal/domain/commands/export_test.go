package commands

// ParseRemoteURL exports parseRemoteURL for testing.
var ParseRemoteURL = parseRemoteURL //nolint:gochecknoglobals // test export

// ResolveTokenFromEnv exports resolveTokenFromEnv for testing.
var ResolveTokenFromEnv = resolveTokenFromEnv //nolint:gochecknoglobals // test export

// TokenEnvHint exports tokenEnvHint for testing.
var TokenEnvHint = tokenEnvHint //nolint:gochecknoglobals // test export

// BumpConfigVersion exports bumpConfigVersion for testing.
var BumpConfigVersion = bumpConfigVersion //nolint:gochecknoglobals // test export

// GenerateReleaseContent exports generateReleaseContent for testing.
var GenerateReleaseContent = generateReleaseContent //nolint:gochecknoglobals // test export

// FormatSize exports formatSize for testing.
var FormatSize = formatSize //nolint:gochecknoglobals // test export

// DefaultProjectName exports defaultProjectName for testing.
var DefaultProjectName = defaultProjectName //nolint:gochecknoglobals // test export

// RemoteInfo exports remoteInfo for testing.
type RemoteInfo = remoteInfo
