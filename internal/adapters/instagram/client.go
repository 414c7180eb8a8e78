package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/httpx"
	"github.com/bnema/astropost/internal/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultAPIURL    = "https://i.instagram.com/api/v1"
	defaultUserAgent = "astropost/1.0"
	sessionCookie    = "sessionid"
	statusOK         = "ok"
)

type Config struct {
	APIURL    string
	UserAgent string
}

// Client talks to the private mobile API. It is the Platform; every
// authenticated operation happens on the Channel it returns.
type Client struct {
	apiURL    string
	userAgent string
	exec      *httpx.Executor
	logger    logrus.FieldLogger
	newID     func() string
	now       func() time.Time
}

var _ ports.Platform = (*Client)(nil)

func NewClient(cfg Config, exec *httpx.Executor, logger logrus.FieldLogger) *Client {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if exec == nil {
		exec = httpx.NewExecutor(nil, httpx.DefaultConfig())
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Client{
		apiURL:    apiURL,
		userAgent: userAgent,
		exec:      exec,
		logger:    logger,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

func (c *Client) Login(ctx context.Context, account, secret string) (ports.Channel, error) {
	if strings.TrimSpace(account) == "" || secret == "" {
		return nil, errors.New("instagram: username and password are required")
	}

	deviceID := c.newID()
	form := url.Values{}
	form.Set("username", account)
	form.Set("password", secret)
	form.Set("device_id", deviceID)

	resp, err := c.exec.DoOnce(ctx, c.formRequest(http.MethodPost, "/accounts/login/", form, ""))
	if err != nil {
		return nil, fmt.Errorf("instagram: login: %w", err)
	}

	var out loginResponse
	if err := decodeEnvelope(resp, &out); err != nil {
		return nil, fmt.Errorf("instagram: login: %w", err)
	}
	if out.Status != statusOK || out.SessionID == "" {
		return nil, fmt.Errorf("instagram: login refused: %s", out.reason())
	}

	username := out.User.Username
	if username == "" {
		username = account
	}

	return &channel{
		client: c,
		settings: settings{
			Username:  username,
			UserID:    out.User.ID.String(),
			SessionID: out.SessionID,
			DeviceID:  deviceID,
			CreatedAt: c.now().UTC(),
		},
	}, nil
}

// Resume rebuilds a channel from an exported blob and checks it against the
// current-user endpoint.
func (c *Client) Resume(ctx context.Context, blob []byte) (ports.Channel, error) {
	saved, err := decodeSettings(blob)
	if err != nil {
		return nil, err
	}

	resp, err := c.exec.Do(ctx, c.emptyRequest(http.MethodGet, "/accounts/current_user/", saved.SessionID))
	if err != nil {
		return nil, fmt.Errorf("instagram: verify session: %w", err)
	}

	var out currentUserResponse
	if err := decodeEnvelope(resp, &out); err != nil {
		return nil, fmt.Errorf("instagram: verify session: %w", err)
	}
	if out.Status != statusOK {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionRejected, out.reason())
	}

	if out.User.Username != "" {
		saved.Username = out.User.Username
	}
	if id := out.User.ID.String(); id != "" {
		saved.UserID = id
	}

	return &channel{client: c, settings: saved}, nil
}

func (c *Client) formRequest(method, path string, form url.Values, session string) httpx.RequestFunc {
	encoded := form.Encode()
	return func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		c.decorate(req, session)
		return req, nil
	}
}

func (c *Client) jsonRequest(method, path string, body []byte, session string) httpx.RequestFunc {
	return func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		c.decorate(req, session)
		return req, nil
	}
}

func (c *Client) emptyRequest(method, path, session string) httpx.RequestFunc {
	return func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, nil)
		if err != nil {
			return nil, err
		}
		c.decorate(req, session)
		return req, nil
	}
}

func (c *Client) decorate(req *http.Request, session string) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: session})
	}
}

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e envelope) reason() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != "" {
		return "status " + e.Status
	}
	return "no status in response"
}

type userRef struct {
	ID       json.Number `json:"id"`
	Username string      `json:"username"`
}

type loginResponse struct {
	envelope
	SessionID string  `json:"session_id"`
	User      userRef `json:"user"`
}

type currentUserResponse struct {
	envelope
	User userRef `json:"user"`
}

type uploadResponse struct {
	envelope
	UploadID string `json:"upload_id"`
}

type configureResponse struct {
	envelope
	Media struct {
		ID string `json:"id"`
	} `json:"media"`
}

// decodeEnvelope closes resp. Auth failures map to ErrSessionRejected; other
// non-2xx statuses still decode so the platform message is preserved.
func decodeEnvelope(resp *http.Response, out any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d", domain.ErrSessionRejected, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &httpx.StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
