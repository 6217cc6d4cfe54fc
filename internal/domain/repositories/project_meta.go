package repositories

// ProjectMeta reads descriptor defaults out of the project's version
// control metadata.
type ProjectMeta interface {
	// SourceURL returns the project's canonical remote URL, normalized to
	// https form. A directory that is not a repository, or has no origin
	// remote, yields an empty string without an error.
	SourceURL(projectDir string) (string, error)

	// LatestTag returns the highest version-ordered tag, without a leading
	// "v". A repository without tags yields an empty string without an error.
	LatestTag(projectDir string) (string, error)

	// CurrentBranch returns the branch HEAD points at.
	CurrentBranch(projectDir string) (string, error)
}
