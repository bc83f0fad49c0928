// Package gemini uses the Gemini API to identify ingredients in photos and
// to suggest recipes for a list of ingredients.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"sahachari/internal/provider"
)

const (
	name  = "gemini"
	model = "gemini-1.5-flash"
)

// Client is a client for the Gemini API.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a new Gemini client. An empty apiKey yields an
// unconfigured client that makes no connection.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return &Client{}, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{client: client, model: client.GenerativeModel(model)}, nil
}

func (c *Client) Name() string     { return name }
func (c *Client) Configured() bool { return c.model != nil }

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// generate sends the parts and returns the first text part of the reply.
func (c *Client) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", provider.TransportError(name, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", provider.TransportError(name, fmt.Errorf("empty response from Gemini"))
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", provider.TransportError(name, fmt.Errorf("unexpected response format from Gemini"))
	}
	return string(text), nil
}

// IsFoodImage checks if the given image contains food and returns a description.
func (c *Client) IsFoodImage(ctx context.Context, jpegData []byte) (bool, string, error) {
	text, err := c.generate(ctx,
		genai.ImageData("jpeg", jpegData),
		genai.Text("Analyze the provided image. If it contains food, return a brief description of the food. If not, respond with 'NO' followed by a 5-word description of the image content."),
	)
	if err != nil {
		return false, "", err
	}
	return isFoodReply(text), text, nil
}

func isFoodReply(text string) bool {
	return !strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), "no")
}

// extractJSON returns the outermost {...} object in a model reply, which
// might be wrapped in markdown or prose.
func extractJSON(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || start > end {
		return "", provider.TransportError(name, fmt.Errorf("could not find JSON object in response: %s", reply))
	}
	return reply[start : end+1], nil
}
