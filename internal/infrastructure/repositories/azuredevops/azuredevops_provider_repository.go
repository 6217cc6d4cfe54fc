package azuredevops

import (
	"context"
	"fmt"
	"strings"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

const providerName = "azuredevops"

// AzureDevOpsProviderRepository implements repositories.ProviderRepository
// for Azure DevOps. Repositories carry the extra Project coordinate that the
// Azure DevOps Git API needs on every call.
type AzureDevOpsProviderRepository struct {
	token  string
	client *Client
}

// NewAzureDevOpsProviderRepository creates a new Azure DevOps provider with
// the given personal access token.
func NewAzureDevOpsProviderRepository(token string) repositories.ProviderRepository {
	return &AzureDevOpsProviderRepository{
		token:  token,
		client: NewClient(token),
	}
}

func (p *AzureDevOpsProviderRepository) Name() string      { return providerName }
func (p *AzureDevOpsProviderRepository) AuthToken() string { return p.token }

func (p *AzureDevOpsProviderRepository) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "dev.azure.com")
}

// DiscoverRepositories lists all Git repositories across the projects of an
// Azure DevOps organization.
func (p *AzureDevOpsProviderRepository) DiscoverRepositories(
	ctx context.Context,
	org string,
) ([]entities.Repository, error) {
	projects, err := p.client.GetProjects(ctx, org)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for %q: %w", org, err)
	}

	var allRepos []entities.Repository
	for _, project := range projects {
		repos, reposErr := p.client.GetRepositories(ctx, org, project.Name)
		if reposErr != nil {
			return nil, fmt.Errorf(
				"failed to list repositories in %q: %w", project.Name, reposErr,
			)
		}

		for _, r := range repos {
			allRepos = append(allRepos, toRepository(org, project.Name, r))
		}
	}

	return allRepos, nil
}

func toRepository(org, project string, r Repository) entities.Repository {
	defaultBranch := r.DefaultBranch
	if defaultBranch == "" {
		defaultBranch = "refs/heads/main"
	}
	return entities.Repository{
		ID:            r.ID,
		Name:          r.Name,
		Organization:  org,
		Project:       project,
		DefaultBranch: defaultBranch,
		RemoteURL:     r.RemoteURL,
		SSHURL:        r.SSHURL,
		ProviderName:  providerName,
	}
}

func (p *AzureDevOpsProviderRepository) GetFileContent(
	ctx context.Context,
	repo entities.Repository,
	path string,
) (string, error) {
	content, err := p.client.GetFileContent(ctx, repo.Organization, repo.Project, repo.Name, path)
	if err != nil {
		return "", fmt.Errorf("failed to get file %q: %w", path, err)
	}
	return content, nil
}

func (p *AzureDevOpsProviderRepository) ListFiles(
	ctx context.Context,
	repo entities.Repository,
	pattern string,
) ([]entities.File, error) {
	items, err := p.client.GetItems(ctx, repo.Organization, repo.Project, repo.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repo items: %w", err)
	}

	var files []entities.File
	for _, item := range items {
		path := strings.TrimPrefix(item.Path, "/")
		if pattern != "" && !strings.HasSuffix(path, pattern) {
			continue
		}
		files = append(files, entities.File{
			Path:     path,
			ObjectID: item.ObjectID,
			IsDir:    item.GitObjectType == "tree",
		})
	}

	return files, nil
}

// GetTags returns the repository tags, newest version first.
func (p *AzureDevOpsProviderRepository) GetTags(
	ctx context.Context,
	repo entities.Repository,
) ([]string, error) {
	tags, err := p.client.GetTags(ctx, repo.Organization, repo.Project, repo.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (p *AzureDevOpsProviderRepository) HasFile(
	ctx context.Context,
	repo entities.Repository,
	path string,
) bool {
	return p.client.HasFile(ctx, repo.Organization, repo.Project, repo.Name, path)
}

func (p *AzureDevOpsProviderRepository) CreateBranchWithChanges(
	ctx context.Context,
	repo entities.Repository,
	input entities.BranchInput,
) error {
	err := p.client.CreateBranchWithChanges(
		ctx, repo.Organization, repo.Project, repo.Name,
		input.BranchName, input.BaseBranch,
		input.Changes, input.CommitMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return nil
}

func (p *AzureDevOpsProviderRepository) CreatePullRequest(
	ctx context.Context,
	repo entities.Repository,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	pr, err := p.client.CreatePullRequest(
		ctx, repo.Organization, repo.Project, repo.Name,
		CreatePRRequest{
			SourceBranch: input.SourceBranch,
			TargetBranch: input.TargetBranch,
			Title:        input.Title,
			Description:  input.Description,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	return &entities.PullRequest{
		ID:     pr.ID,
		Title:  pr.Title,
		URL:    pr.URL,
		Status: pr.Status,
	}, nil
}

func (p *AzureDevOpsProviderRepository) PullRequestExists(
	ctx context.Context,
	repo entities.Repository,
	sourceBranch string,
) (bool, error) {
	sourceRef := "refs/heads/" + strings.TrimPrefix(sourceBranch, "refs/heads/")

	prs, err := p.client.GetActivePullRequests(
		ctx, repo.Organization, repo.Project, repo.Name, sourceRef,
	)
	if err != nil {
		return false, fmt.Errorf("failed to list pull requests: %w", err)
	}

	return len(prs) > 0, nil
}

// CloneURL builds an HTTPS clone URL with the PAT embedded, replacing any
// user name already present in the remote URL.
func (p *AzureDevOpsProviderRepository) CloneURL(repo entities.Repository) string {
	remoteURL := repo.RemoteURL
	if remoteURL == "" {
		remoteURL = fmt.Sprintf(
			"https://dev.azure.com/%s/%s/_git/%s",
			repo.Organization, repo.Project, repo.Name,
		)
	}

	after := strings.TrimPrefix(remoteURL, "https://")
	slash := strings.Index(after, "/")
	if at := strings.Index(after, "@"); at != -1 && (slash == -1 || at < slash) {
		after = after[at+1:]
	}

	return "https://pat:" + p.token + "@" + after
}
