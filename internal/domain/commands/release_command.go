package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/pydist/internal/infrastructure/repositories"
)

const (
	providerGitHub      = "github"
	providerGitLab      = "gitlab"
	providerAzureDevOps = "azuredevops"

	releaseFileMode = 0o644
)

// versionLinePattern matches the "version:" line of the config file.
var versionLinePattern = regexp.MustCompile(`(?m)^(\s*version:\s*).*$`)

// Release is the interface for the release command.
type Release interface {
	Execute(ctx context.Context, projectDir string, settings *entities.Settings, opts ReleaseOptions) error
}

// ReleaseOptions holds runtime options for a release.
type ReleaseOptions struct {
	Version    string // Explicit next version (mutually exclusive with Bump)
	Bump       string // major, minor or patch
	DryRun     bool
	CreatePR   bool
	Token      string
	ConfigPath string // Path of the loaded config file, edited in place
}

// remoteInfo holds the parsed components of a Git remote URL.
type remoteInfo struct {
	ProviderType string
	Org          string
	Project      string // Azure DevOps only
	RepoName     string
}

// releaseEdits holds the two file rewrites a release produces.
type releaseEdits struct {
	Version          string
	ConfigPath       string
	ConfigContent    string
	ChangelogPath    string
	ChangelogContent string
}

// ReleaseCommand cuts a release: bumps the configured version, promotes the
// changelog, and either writes both edits to the working tree or opens a
// pull request carrying them.
type ReleaseCommand struct {
	projectMeta      repositories.ProjectMeta
	providerRegistry *infraRepos.ProviderRegistry
}

// NewReleaseCommand creates a new ReleaseCommand with the given dependencies.
func NewReleaseCommand(
	projectMeta repositories.ProjectMeta,
	providerRegistry *infraRepos.ProviderRegistry,
) *ReleaseCommand {
	return &ReleaseCommand{
		projectMeta:      projectMeta,
		providerRegistry: providerRegistry,
	}
}

// Execute performs the release for the given project directory.
func (it *ReleaseCommand) Execute(
	ctx context.Context,
	projectDir string,
	settings *entities.Settings,
	opts ReleaseOptions,
) error {
	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	nextVersion, versionErr := it.resolveNextVersion(projectDir, settings, opts)
	if versionErr != nil {
		return versionErr
	}
	logger.Infof("[release] Releasing %s %s", settings.Package.Name, nextVersion)

	if opts.ConfigPath == "" {
		return errors.New("release needs a config file to update; create a pydist.yaml first")
	}

	configContent, readErr := os.ReadFile(opts.ConfigPath)
	if readErr != nil {
		return fmt.Errorf("failed to read the config file: %w", readErr)
	}

	newConfig, bumpErr := bumpConfigVersion(string(configContent), nextVersion)
	if bumpErr != nil {
		return bumpErr
	}

	changelogPath := filepath.Join(projectDir, settings.Changelog)
	changelogContent, changelogErr := os.ReadFile(changelogPath)
	if changelogErr != nil {
		return fmt.Errorf("failed to read the changelog: %w", changelogErr)
	}

	changelog := entities.ParseChangelog(string(changelogContent))
	changelog.InsertUnreleasedEntries([]string{
		fmt.Sprintf("- bumped the package version to `%s`", nextVersion),
	})
	if promoteErr := changelog.PromoteUnreleased(nextVersion, time.Now()); promoteErr != nil {
		return fmt.Errorf("failed to promote the changelog: %w", promoteErr)
	}

	if opts.DryRun {
		logger.Infof("[release] Would set version %s in %s", nextVersion, opts.ConfigPath)
		logger.Infof(
			"[release] Would promote the %s [Unreleased] section to [%s]",
			settings.Changelog, nextVersion,
		)
		return nil
	}

	if opts.CreatePR {
		return it.createReleasePR(ctx, projectDir, settings, releaseEdits{
			Version:          nextVersion,
			ConfigPath:       opts.ConfigPath,
			ConfigContent:    newConfig,
			ChangelogPath:    changelogPath,
			ChangelogContent: changelog.String(),
		}, opts.Token)
	}

	if writeErr := os.WriteFile(opts.ConfigPath, []byte(newConfig), releaseFileMode); writeErr != nil {
		return fmt.Errorf("failed to write the config file: %w", writeErr)
	}
	if writeErr := os.WriteFile(changelogPath, []byte(changelog.String()), releaseFileMode); writeErr != nil {
		return fmt.Errorf("failed to write the changelog: %w", writeErr)
	}

	logger.Infof("[release] Released %s: updated %s and %s", nextVersion, opts.ConfigPath, settings.Changelog)
	return nil
}

// resolveNextVersion computes the version to release from the CLI options,
// bumping the configured (or tagged) current version when asked to.
func (it *ReleaseCommand) resolveNextVersion(
	projectDir string,
	settings *entities.Settings,
	opts ReleaseOptions,
) (string, error) {
	if opts.Version != "" && opts.Bump != "" {
		return "", errors.New("--version and --bump are mutually exclusive")
	}

	if opts.Version != "" {
		return strings.TrimPrefix(opts.Version, "v"), nil
	}

	if opts.Bump == "" {
		return "", errors.New("either --version or --bump is required")
	}

	current := settings.Package.Version
	if current == "" {
		tag, tagErr := it.projectMeta.LatestTag(projectDir)
		if tagErr != nil {
			return "", fmt.Errorf("failed to read git tags: %w", tagErr)
		}
		current = tag
	}
	if current == "" {
		return "", errors.New("no current version to bump; set package.version or tag the repository")
	}

	return entities.BumpVersion(current, opts.Bump)
}

// createReleasePR pushes the release edits as a branch and opens a pull
// request against the current branch.
func (it *ReleaseCommand) createReleasePR(
	ctx context.Context,
	projectDir string,
	settings *entities.Settings,
	edits releaseEdits,
	token string,
) error {
	remoteURL, remoteErr := it.projectMeta.SourceURL(projectDir)
	if remoteErr != nil {
		return fmt.Errorf("failed to read the origin remote: %w", remoteErr)
	}
	if remoteURL == "" {
		return errors.New("release --pr needs a git origin remote")
	}

	remote, parseErr := parseRemoteURL(remoteURL)
	if parseErr != nil {
		return fmt.Errorf("failed to detect git provider: %w", parseErr)
	}
	logger.Infof(
		"[release] Detected provider: %s, org: %s, repo: %s",
		remote.ProviderType, remote.Org, remote.RepoName,
	)

	if token == "" {
		token = resolveTokenFromEnv(remote.ProviderType)
	}
	if token == "" {
		return fmt.Errorf(
			"no auth token found for %s; set --token or the appropriate env var (%s)",
			remote.ProviderType, tokenEnvHint(remote.ProviderType),
		)
	}

	provider, providerErr := it.providerRegistry.Get(remote.ProviderType, token)
	if providerErr != nil {
		return fmt.Errorf("failed to create provider: %w", providerErr)
	}

	targetBranch, branchErr := it.projectMeta.CurrentBranch(projectDir)
	if branchErr != nil {
		return fmt.Errorf("failed to detect current branch: %w", branchErr)
	}
	if targetBranch == "" {
		return errors.New("could not detect the branch to target the PR at")
	}

	repo := entities.Repository{
		ID:            remote.RepoName,
		Name:          remote.RepoName,
		Organization:  remote.Org,
		Project:       remote.Project,
		DefaultBranch: targetBranch,
		RemoteURL:     remoteURL,
	}

	if tagErr := it.guardAgainstExistingTag(ctx, provider, repo, edits.Version); tagErr != nil {
		return tagErr
	}

	branchName := "pydist/release-" + edits.Version

	exists, existsErr := provider.PullRequestExists(ctx, repo, branchName)
	if existsErr != nil {
		logger.Warnf("[release] Could not check for an existing PR: %v", existsErr)
	}
	if exists {
		logger.Infof("[release] A PR from %s already exists, nothing to do.", branchName)
		return nil
	}

	changes, changesErr := buildFileChanges(ctx, provider, repo, projectDir, edits)
	if changesErr != nil {
		return changesErr
	}

	createErr := provider.CreateBranchWithChanges(ctx, repo, entities.BranchInput{
		BaseBranch:    targetBranch,
		BranchName:    branchName,
		CommitMessage: "chore(release): " + edits.Version,
		Changes:       changes,
	})
	if createErr != nil {
		return fmt.Errorf("failed to push the release branch: %w", createErr)
	}

	prTitle, prDesc := generateReleaseContent(settings.Package.Name, edits.Version)

	pr, prErr := provider.CreatePullRequest(ctx, repo, entities.PullRequestInput{
		SourceBranch: "refs/heads/" + branchName,
		TargetBranch: "refs/heads/" + targetBranch,
		Title:        prTitle,
		Description:  prDesc,
	})
	if prErr != nil {
		return fmt.Errorf("failed to create the release PR: %w", prErr)
	}

	logger.Infof("[release] Created PR #%d: %s", pr.ID, pr.URL)
	return nil
}

// guardAgainstExistingTag refuses to release a version the remote already
// tags. Listing failures are tolerated; the guard is best effort.
func (it *ReleaseCommand) guardAgainstExistingTag(
	ctx context.Context,
	provider repositories.ProviderRepository,
	repo entities.Repository,
	version string,
) error {
	tags, err := provider.GetTags(ctx, repo)
	if err != nil {
		logger.Warnf("[release] Could not list remote tags: %v", err)
		return nil
	}

	for _, tag := range tags {
		if strings.TrimPrefix(tag, "v") == version {
			return fmt.Errorf("version %s is already tagged on the remote", version)
		}
	}
	return nil
}

// buildFileChanges maps the release edits to provider file changes, with
// paths relative to the repository root.
func buildFileChanges(
	ctx context.Context,
	provider repositories.ProviderRepository,
	repo entities.Repository,
	projectDir string,
	edits releaseEdits,
) ([]entities.FileChange, error) {
	configRel, configErr := repoRelativePath(projectDir, edits.ConfigPath)
	if configErr != nil {
		return nil, fmt.Errorf("release --pr needs the config file inside the project: %w", configErr)
	}

	changelogRel, changelogErr := repoRelativePath(projectDir, edits.ChangelogPath)
	if changelogErr != nil {
		return nil, fmt.Errorf("release --pr needs the changelog inside the project: %w", changelogErr)
	}

	return []entities.FileChange{
		{
			Path:       configRel,
			Content:    edits.ConfigContent,
			ChangeType: changeTypeFor(ctx, provider, repo, configRel),
		},
		{
			Path:       changelogRel,
			Content:    edits.ChangelogContent,
			ChangeType: changeTypeFor(ctx, provider, repo, changelogRel),
		},
	}, nil
}

// repoRelativePath converts a file path to a slash-separated path relative
// to the project root.
func repoRelativePath(projectDir, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	rel, relErr := filepath.Rel(projectDir, abs)
	if relErr != nil {
		return "", relErr
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside %s", path, projectDir)
	}

	return filepath.ToSlash(rel), nil
}

// changeTypeFor decides between adding and editing a file on the remote.
func changeTypeFor(
	ctx context.Context,
	provider repositories.ProviderRepository,
	repo entities.Repository,
	path string,
) string {
	if provider.HasFile(ctx, repo, path) {
		return "edit"
	}
	return "add"
}

// bumpConfigVersion rewrites the first "version:" line of the config file
// content, leaving every other line exactly as written.
func bumpConfigVersion(content, nextVersion string) (string, error) {
	if !versionLinePattern.MatchString(content) {
		return "", errors.New("the config file has no version line to update")
	}

	replaced := false
	result := versionLinePattern.ReplaceAllStringFunc(content, func(line string) string {
		if replaced {
			return line
		}
		replaced = true
		prefix := versionLinePattern.FindStringSubmatch(line)[1]
		return prefix + nextVersion
	})

	return result, nil
}

// generateReleaseContent returns the title and description for a release PR.
func generateReleaseContent(packageName, version string) (string, string) {
	title := fmt.Sprintf("chore(release): %s %s", packageName, version)

	var desc strings.Builder
	desc.WriteString(fmt.Sprintf("## Release %s\n\n", version))
	desc.WriteString("This PR was created automatically by the pydist tool.\n\n")
	desc.WriteString("### Changes\n\n")
	desc.WriteString(fmt.Sprintf("- set `package.version` to `%s`\n", version))
	desc.WriteString(fmt.Sprintf("- promoted the `[Unreleased]` changelog section to `[%s]`\n", version))
	return title, desc.String()
}

// parseRemoteURL extracts provider, org, project, and repo name from a Git
// remote URL.
func parseRemoteURL(rawURL string) (*remoteInfo, error) {
	cleaned := strings.TrimSuffix(rawURL, ".git")

	if strings.Contains(cleaned, "dev.azure.com") {
		return parseAzureDevOpsURL(cleaned)
	}

	if strings.Contains(cleaned, "github.com") {
		org, repo, err := parseStandardGitURL(cleaned, "github.com")
		if err != nil {
			return nil, err
		}
		return &remoteInfo{ProviderType: providerGitHub, Org: org, RepoName: repo}, nil
	}

	if strings.Contains(cleaned, "gitlab.com") {
		org, repo, err := parseStandardGitURL(cleaned, "gitlab.com")
		if err != nil {
			return nil, err
		}
		return &remoteInfo{ProviderType: providerGitLab, Org: org, RepoName: repo}, nil
	}

	return nil, fmt.Errorf("unsupported git remote URL: %s", rawURL)
}

// parseAzureDevOpsURL handles the Azure DevOps remote formats:
//
//	HTTPS:     https://dev.azure.com/{org}/{project}/_git/{repo}
//	SSH:       git@ssh.dev.azure.com:v3/{org}/{project}/{repo}
//	SSH alias: git@dev.azure.com-{alias}:v3/{org}/{project}/{repo}
func parseAzureDevOpsURL(url string) (*remoteInfo, error) {
	if strings.HasPrefix(url, "git@") && strings.Contains(url, ":v3/") {
		_, after, _ := strings.Cut(url, ":v3/")
		parts := strings.Split(after, "/")
		if len(parts) >= 3 { //nolint:mnd // org/project/repo
			return &remoteInfo{
				ProviderType: providerAzureDevOps,
				Org:          parts[0],
				Project:      parts[1],
				RepoName:     parts[2],
			}, nil
		}
		return nil, fmt.Errorf("invalid Azure DevOps SSH URL: %s", url)
	}

	parts := strings.Split(url, "/")
	for i, p := range parts {
		if p == "_git" && i+1 < len(parts) && i >= 2 {
			return &remoteInfo{
				ProviderType: providerAzureDevOps,
				Org:          parts[i-2],
				Project:      parts[i-1],
				RepoName:     parts[i+1],
			}, nil
		}
	}

	return nil, fmt.Errorf("invalid Azure DevOps URL: %s", url)
}

func parseStandardGitURL(url, hostname string) (string, string, error) {
	var pathPart string

	if strings.HasPrefix(url, "git@") {
		parts := strings.SplitN(url, ":", 2) //nolint:mnd // host:path
		if len(parts) < 2 {                  //nolint:mnd // need both parts
			return "", "", fmt.Errorf("invalid SSH URL: %s", url)
		}
		pathPart = parts[1]
	} else {
		_, after, ok := strings.Cut(url, hostname)
		if !ok {
			return "", "", fmt.Errorf("hostname %s not found in URL: %s", hostname, url)
		}
		pathPart = strings.TrimPrefix(after, "/")
	}

	segments := strings.Split(pathPart, "/")
	if len(segments) < 2 { //nolint:mnd // need org + repo
		return "", "", fmt.Errorf("cannot extract org/repo from URL: %s", url)
	}

	return segments[0], segments[1], nil
}

func resolveTokenFromEnv(providerType string) string {
	switch providerType {
	case providerGitHub:
		if t := os.Getenv("PYDIST_GITHUB_TOKEN"); t != "" {
			return t
		}
		return os.Getenv("GITHUB_TOKEN")
	case providerGitLab:
		if t := os.Getenv("PYDIST_GITLAB_TOKEN"); t != "" {
			return t
		}
		return os.Getenv("GITLAB_TOKEN")
	case providerAzureDevOps:
		if t := os.Getenv("PYDIST_AZURE_DEVOPS_TOKEN"); t != "" {
			return t
		}
		if t := os.Getenv("AZURE_DEVOPS_EXT_PAT"); t != "" {
			return t
		}
		return os.Getenv("SYSTEM_ACCESSTOKEN")
	default:
		return ""
	}
}

func tokenEnvHint(providerType string) string {
	switch providerType {
	case providerGitHub:
		return "PYDIST_GITHUB_TOKEN or GITHUB_TOKEN"
	case providerGitLab:
		return "PYDIST_GITLAB_TOKEN or GITLAB_TOKEN"
	case providerAzureDevOps:
		return "PYDIST_AZURE_DEVOPS_TOKEN or AZURE_DEVOPS_EXT_PAT"
	default:
		return "<unknown provider>"
	}
}
