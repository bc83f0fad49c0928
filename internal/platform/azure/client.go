// Package azure identifies ingredients with Azure Computer Vision v3.2.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sahachari/internal/provider"
	"sahachari/internal/vision"
)

const name = "azure-vision"

// Client is a client for the Azure Computer Vision analyze endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// NewClient creates a client for endpoint (for example
// https://myresource.cognitiveservices.azure.com). Both arguments are needed
// for the client to be configured.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
	}
}

func (c *Client) Name() string     { return name }
func (c *Client) Configured() bool { return c.endpoint != "" && c.apiKey != "" }

// analyzeResponse is the subset of the analyze result that is used.
type analyzeResponse struct {
	Tags []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"tags"`
	Objects []struct {
		Object     string  `json:"object"`
		Confidence float64 `json:"confidence"`
	} `json:"objects"`
}

// Identify sends the image and returns food-related tags and objects.
func (c *Client) Identify(ctx context.Context, img *vision.Image) ([]vision.Ingredient, error) {
	params := url.Values{}
	params.Set("visualFeatures", "Categories,Description,Objects,Tags")
	params.Set("details", "Food")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/vision/v3.2/analyze?"+params.Encode(), bytes.NewReader(img.JPEG))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.TransportError(name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, provider.StatusError(name, resp.StatusCode)
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, provider.TransportError(name, fmt.Errorf("failed to decode response body: %w", err))
	}

	var found []vision.Ingredient
	for _, tag := range result.Tags {
		if vision.IsFoodRelated(tag.Name) {
			found = append(found, vision.Ingredient{Name: tag.Name, Confidence: tag.Confidence, Source: "tag"})
		}
	}
	for _, obj := range result.Objects {
		if vision.IsFoodRelated(obj.Object) {
			found = append(found, vision.Ingredient{Name: obj.Object, Confidence: obj.Confidence, Source: "object"})
		}
	}
	return found, nil
}
