package azuredevops

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rios0rios0/pydist/internal/domain/entities"
)

const (
	apiVersion     = "7.0"
	requestTimeout = 30 * time.Second
	emptyObjectID  = "0000000000000000000000000000000000000000"
)

// Client is a minimal Azure DevOps REST client covering the Git operations
// the release flow needs: refs, items, pushes and pull requests.
type Client struct {
	token      string
	httpClient *http.Client
}

// NewClient creates a new Azure DevOps client authenticated with a PAT.
func NewClient(pat string) *Client {
	return &Client{
		token: pat,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// orgBaseURL normalizes an organization identifier into a base URL. Bare
// names target dev.azure.com; full URLs (Azure DevOps Server) pass through.
func orgBaseURL(org string) string {
	org = strings.TrimSuffix(org, "/")
	if !strings.HasPrefix(org, "https://") {
		return "https://dev.azure.com/" + org
	}
	return org
}

// Project represents an Azure DevOps project.
type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	State string `json:"state"`
}

// Repository represents an Azure DevOps Git repository.
type Repository struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	URL           string  `json:"url"`
	RemoteURL     string  `json:"remoteUrl"`
	SSHURL        string  `json:"sshUrl"`
	DefaultBranch string  `json:"defaultBranch"`
	Project       Project `json:"project"`
}

// RepositoryItem represents a file or folder in a repository tree.
type RepositoryItem struct {
	ObjectID      string `json:"objectId"`
	GitObjectType string `json:"gitObjectType"`
	CommitID      string `json:"commitId"`
	Path          string `json:"path"`
}

// PullRequest represents an Azure DevOps pull request.
type PullRequest struct {
	ID           int    `json:"pullRequestId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	URL          string `json:"url"`
	SourceBranch string `json:"sourceRefName"`
	TargetBranch string `json:"targetRefName"`
}

// CreatePRRequest represents a request to create a pull request.
type CreatePRRequest struct {
	SourceBranch string
	TargetBranch string
	Title        string
	Description  string
}

// GetProjects returns all projects of the organization the PAT can see.
func (c *Client) GetProjects(ctx context.Context, org string) ([]Project, error) {
	var allProjects []Project
	continuationToken := ""

	for {
		endpoint := "/_apis/projects?api-version=" + apiVersion
		if continuationToken != "" {
			endpoint += "&continuationToken=" + continuationToken
		}

		resp, headers, err := c.doRequestWithHeaders(ctx, http.MethodGet, org, endpoint, nil)
		if err != nil {
			return nil, err
		}

		var result struct {
			Value []Project `json:"value"`
			Count int       `json:"count"`
		}
		if err := json.Unmarshal(resp, &result); err != nil {
			return nil, fmt.Errorf("failed to parse projects response: %w", err)
		}

		allProjects = append(allProjects, result.Value...)

		continuationToken = headers.Get("x-ms-continuationtoken")
		if continuationToken == "" {
			break
		}
	}

	return allProjects, nil
}

// GetRepositories returns all Git repositories in a project.
func (c *Client) GetRepositories(ctx context.Context, org, project string) ([]Repository, error) {
	endpoint := fmt.Sprintf("/%s/_apis/git/repositories?api-version=%s", project, apiVersion)

	resp, err := c.doRequest(ctx, http.MethodGet, org, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Value []Repository `json:"value"`
		Count int          `json:"count"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to parse repositories response: %w", err)
	}

	return result.Value, nil
}

// GetItems returns the full recursive file tree of a repository.
func (c *Client) GetItems(ctx context.Context, org, project, repo string) ([]RepositoryItem, error) {
	endpoint := fmt.Sprintf(
		"/%s/_apis/git/repositories/%s/items?recursionLevel=Full&api-version=%s",
		project, repo, apiVersion,
	)

	resp, err := c.doRequest(ctx, http.MethodGet, org, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Value []RepositoryItem `json:"value"`
		Count int              `json:"count"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to parse items response: %w", err)
	}

	return result.Value, nil
}

// GetFileContent returns the content of a file in a repository.
func (c *Client) GetFileContent(ctx context.Context, org, project, repo, path string) (string, error) {
	endpoint := fmt.Sprintf(
		"/%s/_apis/git/repositories/%s/items?path=%s&api-version=%s",
		project, repo, url.QueryEscape(path), apiVersion,
	)

	resp, err := c.doRequest(ctx, http.MethodGet, org, endpoint, nil)
	if err != nil {
		return "", err
	}

	return string(resp), nil
}

// HasFile checks whether a file exists at the given path in a repository.
func (c *Client) HasFile(ctx context.Context, org, project, repo, path string) bool {
	endpoint := fmt.Sprintf(
		"/%s/_apis/git/repositories/%s/items?path=%s&api-version=%s",
		project, repo, url.QueryEscape(path), apiVersion,
	)

	_, err := c.doRequest(ctx, http.MethodGet, org, endpoint, nil)
	return err == nil
}

// GetTags returns all tags in a repository, newest version first.
func (c *Client) GetTags(ctx context.Context, org, project, repo string) ([]string, error) {
	endpoint := fmt.Sprintf(
		"/%s/_apis/git/repositories/%s/refs?filter=tags&api-version=%s",
		project, repo, apiVersion,
	)

	resp, err := c.doRequest(ctx, http.MethodGet, org, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Value []struct {
			Name     string `json:"name"`
			ObjectID string `json:"objectId"`
		} `json:"value"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to parse tags response: %w", err)
	}

	var tags []string
	for _, ref := range result.Value {
		tags = append(tags, strings.TrimPrefix(ref.Name, "refs/tags/"))
	}

	entities.SortVersionsDescending(tags)
	return tags, nil
}

// getBranchHead returns the head commit ID of a named branch.
func (c *Client) getBranchHead(ctx context.Context, org, project, repo, branch string) (string, error) {
	endpoint := fmt.Sprintf(
		"/%s/_apis/git/repositories/%s/refs?filter=heads/%s&api-version=%s",
		project, repo, strings.TrimPrefix(branch, "refs/heads/"), apiVersion,
	)

	resp, err := c.doRequest(ctx, http.MethodGet, org, endpoint, nil)
	if err != nil {
		return "", err
	}

	var result struct {
		Value []struct {
			ObjectID string `json:"objectId"`
		} `json:"value"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return "", fmt.Errorf("failed to parse branch response: %w", err)
	}

	if len(result.Value) == 0 {
		return "", fmt.Errorf("branch %q not found", branch)
	}

	return result.Value[0].ObjectID, nil
}

// CreateBranchWithChanges pushes a new branch carrying the given file changes
// as a single commit on top of the base branch head.
func (c *Client) CreateBranchWithChanges(
	ctx context.Context,
	org, project, repo, branchName, baseBranch string,
	changes []entities.FileChange,
	commitMessage string,
) error {
	baseCommitID, err := c.getBranchHead(ctx, org, project, repo, baseBranch)
	if err != nil {
		return fmt.Errorf("failed to get base branch: %w", err)
	}

	var fileChanges []map[string]interface{}
	for _, change := range changes {
		fileChanges = append(fileChanges, map[string]interface{}{
			"changeType": change.ChangeType,
			"item": map[string]string{
				"path": "/" + strings.TrimPrefix(change.Path, "/"),
			},
			"newContent": map[string]string{
				"content":     base64.StdEncoding.EncodeToString([]byte(change.Content)),
				"contentType": "base64encoded",
			},
		})
	}

	pushBody := map[string]interface{}{
		"refUpdates": []map[string]string{
			{
				"name":        "refs/heads/" + strings.TrimPrefix(branchName, "refs/heads/"),
				"oldObjectId": emptyObjectID,
			},
		},
		"commits": []map[string]interface{}{
			{
				"comment": commitMessage,
				"changes": fileChanges,
				"parents": []string{baseCommitID},
			},
		},
	}

	endpoint := fmt.Sprintf(
		"/%s/_apis/git/repositories/%s/pushes?api-version=%s",
		project, repo, apiVersion,
	)

	if _, pushErr := c.doRequest(ctx, http.MethodPost, org, endpoint, pushBody); pushErr != nil {
		return fmt.Errorf("failed to push changes: %w", pushErr)
	}

	return nil
}

// CreatePullRequest creates a new pull request.
func (c *Client) CreatePullRequest(
	ctx context.Context,
	org, project, repo string,
	req CreatePRRequest,
) (*PullRequest, error) {
	body := map[string]interface{}{
		"sourceRefName": req.SourceBranch,
		"targetRefName": req.TargetBranch,
		"title":         req.Title,
		"description":   req.Description,
	}

	endpoint := fmt.Sprintf(
		"/%s/_apis/git/repositories/%s/pullrequests?api-version=%s",
		project, repo, apiVersion,
	)

	resp, err := c.doRequest(ctx, http.MethodPost, org, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create PR: %w", err)
	}

	var pr PullRequest
	if err := json.Unmarshal(resp, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse PR response: %w", err)
	}

	return &pr, nil
}

// GetActivePullRequests returns the open pull requests from a source ref.
func (c *Client) GetActivePullRequests(
	ctx context.Context,
	org, project, repo, sourceRef string,
) ([]PullRequest, error) {
	endpoint := fmt.Sprintf(
		"/%s/_apis/git/repositories/%s/pullrequests"+
			"?searchCriteria.status=active&searchCriteria.sourceRefName=%s&api-version=%s",
		project, repo, url.QueryEscape(sourceRef), apiVersion,
	)

	resp, err := c.doRequest(ctx, http.MethodGet, org, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Value []PullRequest `json:"value"`
		Count int           `json:"count"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to parse pull requests response: %w", err)
	}

	return result.Value, nil
}

func (c *Client) doRequest(
	ctx context.Context,
	method, org, endpoint string,
	body interface{},
) ([]byte, error) {
	resp, _, err := c.doRequestWithHeaders(ctx, method, org, endpoint, body)
	return resp, err
}

func (c *Client) doRequestWithHeaders(
	ctx context.Context,
	method, org, endpoint string,
	body interface{},
) ([]byte, http.Header, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	requestURL := orgBaseURL(org) + endpoint
	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Basic Auth with an empty user name and the PAT as password
	auth := base64.StdEncoding.EncodeToString([]byte(":" + c.token))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, resp.Header, nil
}
