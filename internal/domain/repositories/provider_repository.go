package repositories

import (
	gitforgeRepos "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// ProviderRepository is an alias for gitforge's FileAccessProvider.
// It abstracts the Git hosting service behind the release flow (GitHub,
// GitLab), providing remote file access, branch and PR management.
type ProviderRepository = gitforgeRepos.FileAccessProvider
