package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// BranchInput is re-exported from gitforge.
type BranchInput = gitforgeEntities.BranchInput

// FileChange is re-exported from gitforge.
type FileChange = gitforgeEntities.FileChange

// PullRequestInput is re-exported from gitforge.
type PullRequestInput = gitforgeEntities.PullRequestInput

// PullRequest is re-exported from gitforge.
type PullRequest = gitforgeEntities.PullRequest
