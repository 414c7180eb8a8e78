package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/httpx"
	"github.com/bnema/astropost/internal/ports"
)

const defaultAPIURL = "https://api.openai.com/v1"

type Config struct {
	APIKey      string
	APIURL      string
	Model       string
	Temperature float64
	Brand       string
}

// Client is a content source backed by the chat completions endpoint in JSON mode.
type Client struct {
	apiKey      string
	apiURL      string
	model       string
	temperature float64
	brand       string
	exec        *httpx.Executor
}

var _ ports.ContentSource = (*Client)(nil)

func NewClient(cfg Config, exec *httpx.Executor) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai: api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("openai: model is required")
	}
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	brand := cfg.Brand
	if brand == "" {
		brand = defaultBrand
	}
	if exec == nil {
		exec = httpx.NewExecutor(nil, httpx.DefaultConfig())
	}

	return &Client{
		apiKey:      cfg.APIKey,
		apiURL:      apiURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		brand:       brand,
		exec:        exec,
	}, nil
}

func (c *Client) Generate(ctx context.Context, topic domain.Topic) (domain.ContentPayload, error) {
	prompt, err := render(horoscopeTemplate, horoscopeData{Brand: c.brand, Sign: topic.Title()})
	if err != nil {
		return domain.ContentPayload{}, err
	}

	var out horoscopeResponse
	if err := c.complete(ctx, prompt, &out); err != nil {
		return domain.ContentPayload{}, fmt.Errorf("generate %s: %w", topic, err)
	}

	payload := domain.ContentPayload{
		Topic:       topic,
		Description: strings.TrimSpace(out.Description),
		Mood:        strings.TrimSpace(out.Mood),
		LuckyNumber: int(out.LuckyNumber),
		Color:       strings.TrimSpace(out.Color),
	}
	if err := payload.Validate(); err != nil {
		return domain.ContentPayload{}, fmt.Errorf("generate %s: %w", topic, err)
	}

	return payload, nil
}

func (c *Client) Caption(ctx context.Context, payload domain.ContentPayload) (domain.Caption, error) {
	prompt, err := render(captionTemplate, captionData{
		Brand:       c.brand,
		Sign:        payload.Topic.Title(),
		Description: payload.Description,
		Mood:        payload.Mood,
		Color:       payload.Color,
	})
	if err != nil {
		return domain.Caption{}, err
	}

	var out captionResponse
	if err := c.complete(ctx, prompt, &out); err != nil {
		return domain.Caption{}, fmt.Errorf("caption %s: %w", payload.Topic, err)
	}

	body := strings.TrimSpace(out.Caption)
	if body == "" {
		body = payload.Description
	}

	return domain.Caption{Body: body, Tags: out.Hashtags}, nil
}

func (c *Client) complete(ctx context.Context, prompt string, out any) error {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: strings.TrimSpace(systemPrompt)},
			{Role: "user", Content: prompt},
		},
		Temperature:    c.temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.exec.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		return req, nil
	})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return errors.New("response has no choices")
	}

	content := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if content == "" {
		return errors.New("response content is empty")
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("decode content json: %w", err)
	}

	return nil
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type horoscopeResponse struct {
	Description string      `json:"description"`
	Mood        string      `json:"mood"`
	LuckyNumber flexibleInt `json:"lucky_number"`
	Color       string      `json:"color"`
}

type captionResponse struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

// flexibleInt accepts 7, 7.0 and "7".
type flexibleInt int

func (n *flexibleInt) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*n = 0
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("lucky_number %q is not a number", raw)
	}
	*n = flexibleInt(value)
	return nil
}
