package pexels

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExecutor(server *httptest.Server) *httpx.Executor {
	return httpx.NewExecutor(server.Client(), httpx.Config{MaxRetries: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
}

func TestFetchWithoutKeyIsDisabled(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{}, nil)
	assert.False(t, client.Enabled())

	_, err := client.Fetch(context.Background(), "mystical gold abstract")
	require.ErrorIs(t, err, domain.ErrImageSourceDisabled)
}

func TestFetchSearchesAndDownloadsPickedPhoto(t *testing.T) {
	t.Parallel()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			assert.Equal(t, "px-key", r.Header.Get("Authorization"))
			assert.Equal(t, "mystical gold abstract", r.URL.Query().Get("query"))
			assert.Equal(t, "15", r.URL.Query().Get("per_page"))
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			_, _ = fmt.Fprintf(w, `{"photos":[{"id":1,"src":{"original":"%[1]s/img/1"}},{"id":2,"src":{"original":"%[1]s/img/2"}}]}`, server.URL)
		case "/img/2":
			_, _ = w.Write([]byte("jpeg-bytes-2"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	client := NewClient(Config{APIKey: "px-key", APIURL: server.URL, DownloadDir: dir}, testExecutor(server),
		WithPicker(func(n int) int { return n - 1 }))

	path, err := client.Fetch(context.Background(), "mystical gold abstract")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pexels-2.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes-2", string(data))
}

func TestFetchEmptyResultsFails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"photos":[]}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{APIKey: "px-key", APIURL: server.URL, DownloadDir: t.TempDir()}, testExecutor(server))

	_, err := client.Fetch(context.Background(), "mystical space abstract")
	require.Error(t, err)
	assert.ErrorContains(t, err, "no photos found")
}

func TestFetchSearchErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{APIKey: "px-key", APIURL: server.URL, DownloadDir: t.TempDir()}, testExecutor(server))

	_, err := client.Fetch(context.Background(), "mystical space abstract")
	require.Error(t, err)
	assert.ErrorContains(t, err, "403")
}
