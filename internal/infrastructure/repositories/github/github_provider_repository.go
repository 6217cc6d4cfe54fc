package github

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

const (
	providerName = "github"
	pageSize     = 100

	regularFileMode = "100644"
	blobEntryType   = "blob"
)

// GitHubProviderRepository drives the GitHub REST API through go-github.
// Release branches are assembled server-side with the Git data API, so no
// local clone is needed to push the version bump.
type GitHubProviderRepository struct {
	token  string
	client *gh.Client
}

// NewGitHubProviderRepository builds a provider authenticated with token.
func NewGitHubProviderRepository(token string) repositories.ProviderRepository {
	return &GitHubProviderRepository{
		token:  token,
		client: gh.NewClient(nil).WithAuthToken(token),
	}
}

func (p *GitHubProviderRepository) Name() string      { return providerName }
func (p *GitHubProviderRepository) AuthToken() string { return p.token }

func (p *GitHubProviderRepository) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "github.com")
}

// DiscoverRepositories lists every repository under org. Organizations and
// personal accounts use different endpoints, so a failed org listing retries
// against the user endpoint.
func (p *GitHubProviderRepository) DiscoverRepositories(
	ctx context.Context,
	org string,
) ([]entities.Repository, error) {
	var repos []entities.Repository
	listOpts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{PerPage: pageSize},
	}

	for {
		page, resp, err := p.client.Repositories.ListByOrg(ctx, org, listOpts)
		if err != nil {
			return p.discoverUserRepos(ctx, org)
		}

		for _, r := range page {
			repos = append(repos, toRepository(org, r))
		}

		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}

	return repos, nil
}

func (p *GitHubProviderRepository) discoverUserRepos(
	ctx context.Context,
	user string,
) ([]entities.Repository, error) {
	var repos []entities.Repository
	listOpts := &gh.RepositoryListByUserOptions{
		ListOptions: gh.ListOptions{PerPage: pageSize},
		Type:        "owner",
	}

	for {
		page, resp, err := p.client.Repositories.ListByUser(ctx, user, listOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories for %q: %w", user, err)
		}

		for _, r := range page {
			repos = append(repos, toRepository(user, r))
		}

		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}

	return repos, nil
}

func toRepository(owner string, r *gh.Repository) entities.Repository {
	defaultBranch := "main"
	if r.DefaultBranch != nil {
		defaultBranch = *r.DefaultBranch
	}
	return entities.Repository{
		ID:            strconv.FormatInt(r.GetID(), 10),
		Name:          r.GetName(),
		Organization:  owner,
		DefaultBranch: "refs/heads/" + defaultBranch,
		RemoteURL:     r.GetCloneURL(),
		SSHURL:        r.GetSSHURL(),
		ProviderName:  providerName,
	}
}

func (p *GitHubProviderRepository) GetFileContent(
	ctx context.Context,
	repo entities.Repository,
	path string,
) (string, error) {
	contents, _, _, err := p.client.Repositories.GetContents(
		ctx, repo.Organization, repo.Name, path,
		&gh.RepositoryContentGetOptions{},
	)
	if err != nil {
		return "", fmt.Errorf("failed to fetch file %q: %w", path, err)
	}
	if contents == nil {
		return "", fmt.Errorf("path %q is a directory, not a file", path)
	}

	decoded, err := contents.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode contents of %q: %w", path, err)
	}

	return decoded, nil
}

func (p *GitHubProviderRepository) ListFiles(
	ctx context.Context,
	repo entities.Repository,
	pattern string,
) ([]entities.File, error) {
	branch := strings.TrimPrefix(repo.DefaultBranch, "refs/heads/")
	tree, _, err := p.client.Git.GetTree(ctx, repo.Organization, repo.Name, branch, true)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository tree: %w", err)
	}

	var files []entities.File
	for _, entry := range tree.Entries {
		if pattern != "" && !strings.HasSuffix(entry.GetPath(), pattern) {
			continue
		}
		files = append(files, entities.File{
			Path:     entry.GetPath(),
			ObjectID: entry.GetSHA(),
			IsDir:    entry.GetType() == "tree",
		})
	}

	return files, nil
}

// GetTags returns the repository tags, newest version first.
func (p *GitHubProviderRepository) GetTags(
	ctx context.Context,
	repo entities.Repository,
) ([]string, error) {
	var tags []string
	listOpts := &gh.ListOptions{PerPage: pageSize}

	for {
		page, resp, err := p.client.Repositories.ListTags(
			ctx, repo.Organization, repo.Name, listOpts,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to list repository tags: %w", err)
		}

		for _, tag := range page {
			tags = append(tags, tag.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}

	entities.SortVersionsDescending(tags)
	return tags, nil
}

func (p *GitHubProviderRepository) HasFile(
	ctx context.Context,
	repo entities.Repository,
	path string,
) bool {
	_, err := p.GetFileContent(ctx, repo, path)
	return err == nil
}

// CreateBranchWithChanges writes input.Changes as a single commit on a new
// branch, built through the Git data API: resolve the base commit, create a
// tree on top of it, commit, then point the new ref at that commit.
func (p *GitHubProviderRepository) CreateBranchWithChanges(
	ctx context.Context,
	repo entities.Repository,
	input entities.BranchInput,
) error {
	owner := repo.Organization
	name := repo.Name

	base := strings.TrimPrefix(input.BaseBranch, "refs/heads/")
	ref, _, err := p.client.Git.GetRef(ctx, owner, name, "refs/heads/"+base)
	if err != nil {
		return fmt.Errorf("failed to resolve base branch %q: %w", base, err)
	}
	parentSHA := ref.Object.GetSHA()

	parent, _, err := p.client.Git.GetCommit(ctx, owner, name, parentSHA)
	if err != nil {
		return fmt.Errorf("failed to read base commit: %w", err)
	}

	tree, _, err := p.client.Git.CreateTree(
		ctx, owner, name, parent.Tree.GetSHA(), treeEntriesFor(input.Changes),
	)
	if err != nil {
		return fmt.Errorf("failed to create tree: %w", err)
	}

	commit, _, err := p.client.Git.CreateCommit(
		ctx, owner, name,
		&gh.Commit{
			Message: &input.CommitMessage,
			Tree:    tree,
			Parents: []*gh.Commit{{SHA: &parentSHA}},
		},
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to create commit: %w", err)
	}

	branchRef := "refs/heads/" + input.BranchName
	_, _, err = p.client.Git.CreateRef(
		ctx, owner, name,
		&gh.Reference{
			Ref:    &branchRef,
			Object: &gh.GitObject{SHA: commit.SHA},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create branch %q: %w", input.BranchName, err)
	}

	return nil
}

func treeEntriesFor(changes []entities.FileChange) []*gh.TreeEntry {
	entries := make([]*gh.TreeEntry, 0, len(changes))
	for _, change := range changes {
		content := change.Content
		path := strings.TrimPrefix(change.Path, "/")
		mode := regularFileMode
		entryType := blobEntryType
		entries = append(entries, &gh.TreeEntry{
			Path:    &path,
			Mode:    &mode,
			Type:    &entryType,
			Content: &content,
		})
	}
	return entries
}

func (p *GitHubProviderRepository) CreatePullRequest(
	ctx context.Context,
	repo entities.Repository,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	source := strings.TrimPrefix(input.SourceBranch, "refs/heads/")
	target := strings.TrimPrefix(input.TargetBranch, "refs/heads/")

	canModify := true
	pr, _, err := p.client.PullRequests.Create(
		ctx, repo.Organization, repo.Name,
		&gh.NewPullRequest{
			Title:               &input.Title,
			Head:                &source,
			Base:                &target,
			Body:                &input.Description,
			MaintainerCanModify: &canModify,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	return &entities.PullRequest{
		ID:     pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
		Status: pr.GetState(),
	}, nil
}

func (p *GitHubProviderRepository) PullRequestExists(
	ctx context.Context,
	repo entities.Repository,
	sourceBranch string,
) (bool, error) {
	head := repo.Organization + ":" + sourceBranch
	open, _, err := p.client.PullRequests.List(
		ctx, repo.Organization, repo.Name,
		&gh.PullRequestListOptions{Head: head, State: "open"},
	)
	if err != nil {
		return false, fmt.Errorf("failed to list open pull requests: %w", err)
	}

	return len(open) > 0, nil
}

func (p *GitHubProviderRepository) CloneURL(repo entities.Repository) string {
	remote := repo.RemoteURL
	if remote == "" {
		remote = fmt.Sprintf("https://github.com/%s/%s.git", repo.Organization, repo.Name)
	}
	return strings.Replace(remote, "https://", "https://x-access-token:"+p.token+"@", 1)
}
