//go:build integration || unit || test

// Package repositorydoubles contains hand-written doubles for the repository
// interfaces, used by command and controller tests instead of mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"strings"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

// SpyProviderRepository is a repositories.ProviderRepository double for the
// release flow. Canned responses are configured through the *Err and result
// fields; every mutating call is recorded so tests can assert on the branch
// and pull request payloads that would have reached the hosting provider.
type SpyProviderRepository struct {
	ProviderName string
	Token        string

	// canned responses
	Tags            []string
	GetTagsErr      error
	ExistingFiles   map[string]bool
	CreateBranchErr error
	CreatedPR       *entities.PullRequest
	CreatePRErr     error
	PRExistsResult  bool
	PRExistsErr     error

	// recorded calls
	BranchInputs     []entities.BranchInput
	PRInputs         []entities.PullRequestInput
	PRExistsBranches []string
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) Name() string      { return p.ProviderName }
func (p *SpyProviderRepository) AuthToken() string { return p.Token }

func (p *SpyProviderRepository) MatchesURL(url string) bool {
	return p.ProviderName != "" && strings.Contains(url, p.ProviderName)
}

func (p *SpyProviderRepository) GetTags(
	_ context.Context, _ entities.Repository,
) ([]string, error) {
	return p.Tags, p.GetTagsErr
}

func (p *SpyProviderRepository) HasFile(
	_ context.Context, _ entities.Repository, path string,
) bool {
	return p.ExistingFiles[path]
}

func (p *SpyProviderRepository) CreateBranchWithChanges(
	_ context.Context, _ entities.Repository, input entities.BranchInput,
) error {
	p.BranchInputs = append(p.BranchInputs, input)
	return p.CreateBranchErr
}

func (p *SpyProviderRepository) CreatePullRequest(
	_ context.Context, _ entities.Repository, input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	p.PRInputs = append(p.PRInputs, input)
	if p.CreatePRErr != nil {
		return nil, p.CreatePRErr
	}
	if p.CreatedPR != nil {
		return p.CreatedPR, nil
	}
	return &entities.PullRequest{
		ID:    1,
		Title: input.Title,
		URL:   "https://example.com/pr/1",
	}, nil
}

func (p *SpyProviderRepository) PullRequestExists(
	_ context.Context, _ entities.Repository, branch string,
) (bool, error) {
	p.PRExistsBranches = append(p.PRExistsBranches, branch)
	return p.PRExistsResult, p.PRExistsErr
}

func (p *SpyProviderRepository) CloneURL(repo entities.Repository) string {
	if repo.RemoteURL != "" {
		return repo.RemoteURL
	}
	return fmt.Sprintf("https://example.com/%s/%s.git", repo.Organization, repo.Name)
}

// The remaining methods exist only to satisfy the provider contract; the
// release flow never reads remote trees or discovers repositories.

func (p *SpyProviderRepository) DiscoverRepositories(
	_ context.Context, _ string,
) ([]entities.Repository, error) {
	return nil, nil
}

func (p *SpyProviderRepository) GetFileContent(
	_ context.Context, _ entities.Repository, path string,
) (string, error) {
	return "", fmt.Errorf("file not found: %s", path)
}

func (p *SpyProviderRepository) ListFiles(
	_ context.Context, _ entities.Repository, _ string,
) ([]entities.File, error) {
	return nil, nil
}
