package repositories

import (
	adoRepo "github.com/rios0rios0/pydist/internal/infrastructure/repositories/azuredevops"
	ghRepo "github.com/rios0rios0/pydist/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/pydist/internal/infrastructure/repositories/gitlab"
	"github.com/rios0rios0/pydist/internal/infrastructure/repositories/gitmeta"
	pyRepo "github.com/rios0rios0/pydist/internal/infrastructure/repositories/python"
	"github.com/rios0rios0/pydist/internal/infrastructure/repositories/pypi"
	"github.com/rios0rios0/pydist/internal/infrastructure/repositories/scaffold"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewGitHubProviderRepository)
		reg.Register("gitlab", glRepo.NewGitLabProviderRepository)
		reg.Register("azuredevops", adoRepo.NewAzureDevOpsProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register backend registry with all build backend implementations
	if err := container.Provide(func() *BackendRegistry {
		reg := NewBackendRegistry()
		reg.Register(pyRepo.NewPEP517BackendRepository())
		reg.Register(pyRepo.NewSetuptoolsBackendRepository())
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(pypi.NewPyPIPackageIndexRepository); err != nil {
		return err
	}

	if err := container.Provide(gitmeta.NewGitProjectMetaRepository); err != nil {
		return err
	}

	if err := container.Provide(scaffold.NewTemplateScaffoldRepository); err != nil {
		return err
	}

	return nil
}
