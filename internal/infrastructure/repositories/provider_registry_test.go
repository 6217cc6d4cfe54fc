//go:build unit

package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainRepos "github.com/rios0rios0/pydist/internal/domain/repositories"
	"github.com/rios0rios0/pydist/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/pydist/test/infrastructure/repositorydoubles"
)

func TestProviderRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should register and retrieve a provider by name", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewProviderRegistry()
		reg.Register("github", func(_ string) domainRepos.ProviderRepository {
			return &doubles.SpyProviderRepository{ProviderName: "github"}
		})

		// when
		provider, err := reg.Get("github", "fake-token")

		// then
		require.NoError(t, err)
		assert.NotNil(t, provider)
		assert.Equal(t, "github", provider.Name())
	})

	t.Run("should return error for unknown provider", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewProviderRegistry()

		// when
		provider, err := reg.Get("bitbucket", "token")

		// then
		require.Error(t, err)
		assert.Nil(t, provider)
		assert.Contains(t, err.Error(), "unknown provider type")
	})

	t.Run("should pass the token to the factory", func(t *testing.T) {
		t.Parallel()

		// given
		var receivedToken string
		reg := repositories.NewProviderRegistry()
		reg.Register("gitlab", func(token string) domainRepos.ProviderRepository {
			receivedToken = token
			return &doubles.SpyProviderRepository{ProviderName: "gitlab", Token: token}
		})

		// when
		_, err := reg.Get("gitlab", "my-secret-token")

		// then
		require.NoError(t, err)
		assert.Equal(t, "my-secret-token", receivedToken)
	})

	t.Run("should list registered provider names", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewProviderRegistry()
		reg.Register("github", func(_ string) domainRepos.ProviderRepository {
			return &doubles.SpyProviderRepository{ProviderName: "github"}
		})
		reg.Register("azuredevops", func(_ string) domainRepos.ProviderRepository {
			return &doubles.SpyProviderRepository{ProviderName: "azuredevops"}
		})

		// when
		names := reg.Names()

		// then
		assert.ElementsMatch(t, []string{"github", "azuredevops"}, names)
	})

	t.Run("should return empty names for an empty registry", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewProviderRegistry()

		// when
		names := reg.Names()

		// then
		assert.Empty(t, names)
	})
}
