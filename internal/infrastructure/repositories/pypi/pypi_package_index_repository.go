package pypi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

const (
	defaultBaseURL = "https://pypi.org/pypi"
	lookupTimeout  = 30 * time.Second
)

// PyPIPackageIndexRepository implements repositories.PackageIndex against
// the PyPI JSON API.
type PyPIPackageIndexRepository struct {
	client  *http.Client
	baseURL string
}

// NewPyPIPackageIndexRepository creates an index client against pypi.org.
func NewPyPIPackageIndexRepository() repositories.PackageIndex {
	return newWithBaseURL(defaultBaseURL)
}

func newWithBaseURL(baseURL string) *PyPIPackageIndexRepository {
	return &PyPIPackageIndexRepository{
		client:  &http.Client{Timeout: lookupTimeout},
		baseURL: baseURL,
	}
}

// releaseDocument is the slice of the PyPI JSON response the lookup needs.
type releaseDocument struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

// LatestVersion returns the most recent release published for the named
// distribution.
func (p *PyPIPackageIndexRepository) LatestVersion(
	ctx context.Context,
	name string,
) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/json", p.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query the package index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("distribution %q not found on the index", name)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var document releaseDocument
	if decodeErr := json.NewDecoder(resp.Body).Decode(&document); decodeErr != nil {
		return "", fmt.Errorf("failed to parse index response: %w", decodeErr)
	}

	if document.Info.Version == "" {
		return "", errors.New("index response carries no release version")
	}

	return document.Info.Version, nil
}
