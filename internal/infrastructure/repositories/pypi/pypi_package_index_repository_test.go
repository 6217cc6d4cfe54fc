//go:build unit

package pypi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pydist/internal/infrastructure/repositories/pypi"
)

func TestPyPIPackageIndexRepositoryLatestVersion(t *testing.T) {
	t.Parallel()

	t.Run("should return the latest release version", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/requests/json", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"info": {"version": "2.32.3", "name": "requests"}}`))
		}))
		defer server.Close()

		index := pypi.NewWithBaseURL(server.URL)

		// when
		version, err := index.LatestVersion(context.Background(), "requests")

		// then
		require.NoError(t, err)
		assert.Equal(t, "2.32.3", version)
	})

	t.Run("should report an unknown distribution", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		index := pypi.NewWithBaseURL(server.URL)

		// when
		_, err := index.LatestVersion(context.Background(), "no-such-package")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), `distribution "no-such-package" not found on the index`)
	})

	t.Run("should fail on unexpected status codes", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		index := pypi.NewWithBaseURL(server.URL)

		// when
		_, err := index.LatestVersion(context.Background(), "requests")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 502")
	})

	t.Run("should fail on a malformed response body", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"info": `))
		}))
		defer server.Close()

		index := pypi.NewWithBaseURL(server.URL)

		// when
		_, err := index.LatestVersion(context.Background(), "requests")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse index response")
	})

	t.Run("should fail when the response carries no version", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"info": {}}`))
		}))
		defer server.Close()

		index := pypi.NewWithBaseURL(server.URL)

		// when
		_, err := index.LatestVersion(context.Background(), "requests")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no release version")
	})

	t.Run("should fail when the index is unreachable", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		server.Close() // shut down before the lookup

		index := pypi.NewWithBaseURL(server.URL)

		// when
		_, err := index.LatestVersion(context.Background(), "requests")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query the package index")
	})

	t.Run("should escape the distribution name in the URL", func(t *testing.T) {
		t.Parallel()

		// given
		var requestedPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.EscapedPath()
			_, _ = w.Write([]byte(`{"info": {"version": "1.0.0"}}`))
		}))
		defer server.Close()

		index := pypi.NewWithBaseURL(server.URL)

		// when
		_, err := index.LatestVersion(context.Background(), "zope.interface/../evil")

		// then
		require.NoError(t, err)
		assert.Equal(t, "/zope.interface%2F..%2Fevil/json", requestedPath)
	})
}
