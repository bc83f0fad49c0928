// Package openai uses an OpenAI-compatible chat completions API to suggest
// recipes and to identify ingredients in photos.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sahachari/internal/provider"
)

const (
	name           = "openai"
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Client represents a client for a chat completions endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at another OpenAI-compatible server, such as
// a local model runner.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithModel selects the model name sent with each request.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// NewClient creates a new client; an empty apiKey leaves it unconfigured.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		apiKey:     apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string     { return name }
func (c *Client) Configured() bool { return c.apiKey != "" }

// Request represents the request body for chat completions.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Message represents a message in the request.
type Message struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// Content represents one part of a message.
type Content struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL represents an inline image in the content.
type ImageURL struct {
	URL string `json:"url"`
}

// Response represents the response from chat completions.
type Response struct {
	Choices []Choice `json:"choices"`
}

// Choice represents a choice in the response.
type Choice struct {
	Message ResponseMessage `json:"message"`
}

// ResponseMessage represents a message in the response.
type ResponseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateContent sends a prompt, with an optional JPEG image, and returns
// the first choice's text.
func (c *Client) GenerateContent(ctx context.Context, text string, jpegData []byte) (string, error) {
	content := []Content{{Type: "text", Text: text}}
	if len(jpegData) > 0 {
		content = append(content, Content{
			Type:     "image_url",
			ImageURL: &ImageURL{URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)},
		})
	}

	reqBody := Request{
		Model:       c.model,
		Messages:    []Message{{Role: "user", Content: content}},
		Temperature: 0.7,
		MaxTokens:   1024,
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", provider.TransportError(name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", provider.StatusError(name, resp.StatusCode)
	}

	var chatResp Response
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", provider.TransportError(name, fmt.Errorf("failed to decode response body: %w", err))
	}

	if len(chatResp.Choices) == 0 {
		return "", provider.TransportError(name, fmt.Errorf("no content found in response"))
	}
	return chatResp.Choices[0].Message.Content, nil
}

// decodeJSON strips markdown fences around a model reply and unmarshals it.
func decodeJSON(reply string, out any) error {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return provider.TransportError(name, fmt.Errorf("failed to unmarshal model reply: %w", err))
	}
	return nil
}
