package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/httpx"
	"github.com/bnema/astropost/internal/ports"
)

const (
	defaultAPIURL      = "https://api.pexels.com/v1"
	defaultDownloadDir = "generated_images"
	resultsPerPage     = 15
)

type Config struct {
	APIKey      string
	APIURL      string
	DownloadDir string
}

// Picker returns an index in [0,n).
type Picker func(n int) int

type Client struct {
	apiKey      string
	apiURL      string
	downloadDir string
	exec        *httpx.Executor
	pick        Picker
}

var _ ports.ImageSource = (*Client)(nil)

type Option func(*Client)

func WithPicker(pick Picker) Option {
	return func(c *Client) {
		if pick != nil {
			c.pick = pick
		}
	}
}

// NewClient never fails; without a key every Fetch reports ErrImageSourceDisabled.
func NewClient(cfg Config, exec *httpx.Executor, opts ...Option) *Client {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	downloadDir := cfg.DownloadDir
	if downloadDir == "" {
		downloadDir = defaultDownloadDir
	}
	if exec == nil {
		exec = httpx.NewExecutor(nil, httpx.DefaultConfig())
	}

	c := &Client{
		apiKey:      strings.TrimSpace(cfg.APIKey),
		apiURL:      apiURL,
		downloadDir: downloadDir,
		exec:        exec,
		pick:        rand.IntN,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

func (c *Client) Fetch(ctx context.Context, query string) (string, error) {
	if !c.Enabled() {
		return "", domain.ErrImageSourceDisabled
	}

	photos, err := c.search(ctx, query)
	if err != nil {
		return "", err
	}
	if len(photos) == 0 {
		return "", fmt.Errorf("pexels: no photos found for %q", query)
	}

	photo := photos[c.pick(len(photos))]
	if photo.Src.Original == "" {
		return "", fmt.Errorf("pexels: photo %d has no original source", photo.ID)
	}

	return c.download(ctx, photo)
}

func (c *Client) search(ctx context.Context, query string) ([]photo, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(resultsPerPage))
	params.Set("page", "1")
	endpoint := c.apiURL + "/search?" + params.Encode()

	resp, err := c.exec.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", c.apiKey)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("pexels: search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pexels: search: %w", httpx.ConsumeError(resp))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("pexels: decode search: %w", err)
	}

	return decoded.Photos, nil
}

func (c *Client) download(ctx context.Context, p photo) (string, error) {
	resp, err := c.exec.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, p.Src.Original, nil)
	})
	if err != nil {
		return "", fmt.Errorf("pexels: download photo %d: %w", p.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pexels: download photo %d: %w", p.ID, httpx.ConsumeError(resp))
	}

	if err := os.MkdirAll(c.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("pexels: create download dir: %w", err)
	}

	target := filepath.Join(c.downloadDir, fmt.Sprintf("pexels-%d.jpg", p.ID))
	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("pexels: create %s: %w", target, err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("pexels: write %s: %w", target, err)
	}
	if err := file.Close(); err != nil {
		return "", errors.Join(fmt.Errorf("pexels: close %s: %w", target, err), os.Remove(target))
	}

	return target, nil
}

type searchResponse struct {
	Photos []photo `json:"photos"`
}

type photo struct {
	ID  int64 `json:"id"`
	Src struct {
		Original string `json:"original"`
	} `json:"src"`
}
