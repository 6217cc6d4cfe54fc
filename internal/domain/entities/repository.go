package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// Repository identifies a hosted Git repository targeted by the release
// flow. Re-exported from gitforge.
type Repository = gitforgeEntities.Repository

// File is a file entry in a hosted repository tree. Re-exported from gitforge.
type File = gitforgeEntities.File
