package gitmeta

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

// GitProjectMetaRepository implements repositories.ProjectMeta by reading the
// project's own git metadata, the source the legacy template flow filled its
// placeholders from by hand.
type GitProjectMetaRepository struct{}

// NewGitProjectMetaRepository creates a git-backed project metadata reader.
func NewGitProjectMetaRepository() repositories.ProjectMeta {
	return &GitProjectMetaRepository{}
}

// SourceURL returns the origin remote URL normalized to https form. A
// directory outside version control, or without an origin remote, yields "".
func (p *GitProjectMetaRepository) SourceURL(projectDir string) (string, error) {
	repo, err := openRepository(projectDir)
	if err != nil || repo == nil {
		return "", err
	}

	remote, remoteErr := repo.Remote("origin")
	if errors.Is(remoteErr, git.ErrRemoteNotFound) {
		return "", nil
	}
	if remoteErr != nil {
		return "", fmt.Errorf("failed to read origin remote: %w", remoteErr)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}

	return NormalizeRemoteURL(urls[0]), nil
}

// LatestTag returns the highest version-ordered tag without a leading "v".
// A repository without tags yields "".
func (p *GitProjectMetaRepository) LatestTag(projectDir string) (string, error) {
	repo, err := openRepository(projectDir)
	if err != nil || repo == nil {
		return "", err
	}

	tagsIter, tagsErr := repo.Tags()
	if tagsErr != nil {
		return "", fmt.Errorf("failed to list tags: %w", tagsErr)
	}

	var tags []string
	iterErr := tagsIter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if iterErr != nil {
		return "", fmt.Errorf("failed to iterate tags: %w", iterErr)
	}

	if len(tags) == 0 {
		return "", nil
	}

	entities.SortVersionsDescending(tags)
	return strings.TrimPrefix(tags[0], "v"), nil
}

// CurrentBranch returns the branch HEAD points at.
func (p *GitProjectMetaRepository) CurrentBranch(projectDir string) (string, error) {
	repo, err := openRepository(projectDir)
	if err != nil {
		return "", err
	}
	if repo == nil {
		return "", fmt.Errorf("%q is not a git repository", projectDir)
	}

	head, headErr := repo.Head()
	if headErr != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", headErr)
	}
	if !head.Name().IsBranch() {
		return "", errors.New("HEAD is detached, checkout a branch first")
	}

	return head.Name().Short(), nil
}

// openRepository opens the repository containing projectDir. A directory
// outside version control yields (nil, nil).
func openRepository(projectDir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(projectDir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %q: %w", projectDir, err)
	}
	return repo, nil
}

// NormalizeRemoteURL rewrites SSH-style remote URLs to their https form and
// strips the ".git" suffix, yielding the browsable project URL.
func NormalizeRemoteURL(rawURL string) string {
	cleaned := strings.TrimSuffix(strings.TrimSpace(rawURL), ".git")

	// scp-like syntax: git@host:org/repo
	if strings.HasPrefix(cleaned, "git@") {
		rest := strings.TrimPrefix(cleaned, "git@")
		host, path, found := strings.Cut(rest, ":")
		if found {
			return "https://" + host + "/" + strings.TrimPrefix(path, "/")
		}
	}

	// ssh://git@host/org/repo
	if strings.HasPrefix(cleaned, "ssh://") {
		rest := strings.TrimPrefix(cleaned, "ssh://")
		rest = strings.TrimPrefix(rest, "git@")
		return "https://" + rest
	}

	return cleaned
}
